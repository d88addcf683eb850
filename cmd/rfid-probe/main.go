package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tagfleet/rfid-reader/pkg/protocol"
	"github.com/tagfleet/rfid-reader/pkg/reader"
	"github.com/tagfleet/rfid-reader/pkg/settings"
	"github.com/tagfleet/rfid-reader/pkg/telemetry"
	"github.com/tagfleet/rfid-reader/pkg/transport"
)

// Configuration flags
var (
	transportKind = flag.String("transport", "serial", "Transport kind: serial, usb, tcp")
	serialDevice  = flag.String("serial", "/dev/ttyUSB0", "Serial device path")
	baudRate      = flag.Int("baud", 115200, "Serial baud rate")
	tcpHost       = flag.String("host", "192.168.1.190", "TCP reader host")
	tcpPort       = flag.Int("port", 6000, "TCP reader port")
	readTimeout   = flag.Duration("timeout", 800*time.Millisecond, "Transport read timeout")

	redisAddr = flag.String("redis-addr", "", "Redis server address for telemetry fan-out (empty disables telemetry)")
	redisPass = flag.String("redis-pass", "", "Redis password")
	redisDB   = flag.Int("redis-db", 0, "Redis database number")

	stopAfter = flag.Int("stop-after", 0, "Stop inventory after N tags (0: run until Ctrl-C)")
)

func openTransport() (transport.Transport, error) {
	switch *transportKind {
	case "serial":
		return transport.OpenSerial(*serialDevice, *baudRate, *readTimeout)
	case "usb":
		addrs, err := transport.ScanUSBDevices()
		if err != nil {
			return nil, err
		}
		if len(addrs) == 0 {
			return nil, os.ErrNotExist
		}
		return transport.OpenUSB(addrs[0], *readTimeout)
	case "tcp":
		return transport.DialTCP(*tcpHost, *tcpPort, *readTimeout)
	default:
		log.Fatalf("unknown transport kind: %s", *transportKind)
		return nil, nil
	}
}

func main() {
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("Starting rfid-probe")
	log.Printf("Transport: %s", *transportKind)

	t, err := openTransport()
	if err != nil {
		log.Fatalf("Failed to open transport: %v", err)
	}
	defer t.Close()
	log.Printf("Transport connected")

	r := reader.New(t)
	r.OnTx = func(buf []byte) { log.Printf("TX % x", buf) }
	r.OnRx = func(buf []byte) { log.Printf("RX % x", buf) }
	defer r.Close()

	var sink *telemetry.Sink
	if *redisAddr != "" {
		sink, err = telemetry.New(*redisAddr, *redisPass, *redisDB, "rfid-probe")
		if err != nil {
			log.Printf("Warning: telemetry disabled: %v", err)
			sink = nil
		} else {
			defer sink.Close()
			log.Printf("Telemetry connected to %s", *redisAddr)
		}
	}

	if _, err := r.Init(); err != nil {
		log.Fatalf("Failed to initialize reader: %v", err)
	}

	info, err := r.GetDeviceInfo()
	if err != nil {
		log.Printf("Warning: failed to get device info: %v", err)
	} else {
		log.Printf("Device info: %s", info)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	param := settings.AnswerModeInventoryParameter{StopAfter: protocol.StopAfterTime, Value: 0}
	if *stopAfter > 0 {
		param = settings.AnswerModeInventoryParameter{StopAfter: protocol.StopAfterNumber, Value: uint32(*stopAfter)}
	}

	stream, err := r.StartInventory(protocol.WorkModeAnswerMode, param)
	if err != nil {
		log.Fatalf("Failed to start inventory: %v", err)
	}
	log.Printf("Inventory started")

	tagCount := 0
	for {
		select {
		case <-sigCh:
			log.Printf("Stopping inventory...")
			if err := r.StopInventory(protocol.WorkModeAnswerMode); err != nil {
				log.Printf("Warning: failed to stop inventory cleanly: %v", err)
			}
			if sink != nil {
				_ = sink.PublishStatus("idle")
			}
			log.Printf("Saw %d tag reads, shutting down", tagCount)
			return
		default:
		}

		inv, ok, err := stream.Next()
		if err != nil {
			log.Printf("Inventory ended with error: %v", err)
			return
		}
		if !ok {
			continue
		}
		if inv.Status == protocol.StatusNoCountLabel {
			log.Printf("Inventory terminated (NO_COUNT_LABEL)")
			return
		}
		if inv.Tag != nil {
			tagCount++
			log.Printf("Tag: antenna=%d epc=% x rssi=%d", inv.Tag.Antenna, inv.Tag.EPC, inv.Tag.RSSIRaw)
			if sink != nil {
				if err := sink.PublishTag(inv.Tag); err != nil {
					log.Printf("Warning: telemetry publish failed: %v", err)
				}
			}
		}
	}
}
