package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gibzwein/RCE-reader/pkg/feed"
	"github.com/gibzwein/RCE-reader/pkg/indicator/modbusled"
	"github.com/gibzwein/RCE-reader/pkg/localtime"
	"github.com/gibzwein/RCE-reader/pkg/modbusclient"
	"github.com/gibzwein/RCE-reader/pkg/price"
	"github.com/gibzwein/RCE-reader/pkg/tier"
)

func main() {
	server := flag.String("server", feed.DefaultServer, "price feed server")
	date := flag.String("date", "", "date to fetch as YYYYMMDD, defaults to today")
	hour := flag.Int("hour", -1, "local hour to classify, defaults to the current hour")
	offset := flag.Int("offset", price.DefaultHourLabelOffset, "hour label offset")
	attempts := flag.Int("attempts", 3, "fetch attempts")

	modbusAddr := flag.String("modbus", "", "tcp modbus address of an rgb light to set")
	slaveID := flag.Int("slave", 1, "modbus slave id")
	register := flag.Int("register", 0, "first colour register")
	fullScale := flag.Int("fullscale", 255, "register value for a fully lit channel")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	now := localtime.New(localtime.SystemClock, 1, 1).Now()
	if *date == "" {
		*date = now.Date()
	}
	if *hour < 0 {
		*hour = now.Hour
	}

	client := feed.New(*server, *attempts, 5*time.Second)
	raw, err := client.Fetch(ctx, *date)
	if err != nil {
		log.Fatal(err)
	}

	records := price.Parse(raw)
	stats, err := price.Aggregate(records)
	if err != nil {
		log.Fatalf("no prices for %s: %s", *date, err)
	}
	for _, r := range records {
		fmt.Printf("%s %02d %9.2f %s\n", r.Date, r.Hour, r.Price, tier.Classify(r.Price, stats))
	}
	fmt.Printf("average: %.2f min: %.2f max: %.2f\n", stats.Average, stats.Min, stats.Max)

	r, ok := price.SelectHour(records, *hour, *offset)
	if !ok {
		log.Fatalf("no price for hour %d", *hour)
	}
	t := tier.Classify(r.Price, stats)
	fmt.Printf("hour %d: %.2f %s %s\n", *hour, r.Price, t, t.Color())

	if *modbusAddr == "" {
		return
	}
	if *slaveID < 0 || *slaveID > 0xff {
		log.Fatalf("slave id out of range: %d", *slaveID)
	}
	mc := modbusclient.DialTCP(*modbusAddr, byte(*slaveID))
	defer mc.Close()
	led := modbusled.New(mc, uint16(*register), uint16(*fullScale))
	if err := led.SetColor(t.Color()); err != nil {
		log.Println("error was: ", err)
		return
	}
	c, err := led.Color()
	if err != nil {
		log.Println("error reading back: ", err)
		return
	}
	log.Println("colour is: ", c)
}
