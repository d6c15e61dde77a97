package version

import (
	"encoding/json"
	"fmt"
	"runtime/debug"
)

type Info struct {
	Commit string `json:"commit"`
	Time   string `json:"time"`
}

var Build = func() Info {
	v := Info{Commit: "dev"}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				v.Commit = setting.Value
			}
			if setting.Key == "vcs.time" {
				v.Time = setting.Value
			}
		}
	}
	return v
}()

func (i Info) String() string {
	b, err := json.Marshal(&i)
	if err != nil {
		return i.Commit
	}
	return string(b)
}

// UserAgent is sent with feed requests. The feed host rejects requests without a browser-like agent.
func UserAgent() string {
	commit := Build.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("Mozilla/5.0 (compatible; rce-reader/%s)", commit)
}
