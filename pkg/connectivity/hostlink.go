package connectivity

import (
	"net"

	"github.com/sirupsen/logrus"
)

// HostLink reports the link state of the host network stack. The operating system owns
// association, so SetActive and Connect only log the request.
type HostLink struct {
	interfaces func() ([]net.Interface, error)
	addrs      func(net.Interface) ([]net.Addr, error)
}

func NewHostLink() *HostLink {
	return &HostLink{
		interfaces: net.Interfaces,
		addrs: func(i net.Interface) ([]net.Addr, error) {
			return i.Addrs()
		},
	}
}

func (h *HostLink) SetActive(active bool) error {
	logrus.Debugf("hostlink: active=%t", active)
	return nil
}

func (h *HostLink) Connect(ssid, password string) error {
	logrus.Debugf("hostlink: association with %q left to the operating system", ssid)
	return nil
}

// IsConnected is true when a non-loopback interface is up and has a global unicast address.
func (h *HostLink) IsConnected() bool {
	ifaces, err := h.interfaces()
	if err != nil {
		logrus.Errorf("hostlink: error listing interfaces: %s", err)
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := h.addrs(iface)
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if ok && ipnet.IP.IsGlobalUnicast() {
				return true
			}
		}
	}
	return false
}
