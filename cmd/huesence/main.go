package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/wheelibin/huesence/internal/bus"
	"github.com/wheelibin/huesence/internal/config"
	"github.com/wheelibin/huesence/internal/models"
)

const usage = `usage: huesence [--config path] <command>

commands:
  status                  print the last pairing status
  scan                    ask the daemon to look for a bridge
  disconnect              ask the daemon to drop the bridge
  night-only on|off       only switch groups on at night
  name <sensor> <name>    set the display name of a sensor
`

func main() {
	configPath := pflag.String("config", "", "path to the config file (json or yaml)")
	timeout := pflag.Duration("timeout", 5*time.Second, "how long to wait for the daemon's status")
	pflag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("unable to load config", "err", err)
	}

	topics := bus.Topics{Prefix: cfg.MQTT.TopicPrefix}
	client, err := bus.Connect(logger, bus.Options{
		Broker:   cfg.MQTT.Broker,
		ClientID: fmt.Sprintf("%s-cli-%d", cfg.MQTT.ClientID, os.Getpid()),
		Username: cfg.MQTT.Username,
		Password: cfg.MQTT.Password,
		QoS:      byte(cfg.MQTT.QoS),
		Topics:   topics,
		Observer: true,
	})
	if err != nil {
		logger.Fatal("unable to connect to the broker", "broker", cfg.MQTT.Broker, "err", err)
	}

	err = run(client, topics, *timeout, pflag.Args())
	client.Close()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(client *bus.Client, topics bus.Topics, timeout time.Duration, args []string) error {
	switch args[0] {
	case "status":
		return printStatus(client, topics, timeout)

	case "scan":
		return client.Publish(topics.Scan(), []byte("true"), false)

	case "disconnect":
		return client.Publish(topics.Disconnect(), []byte("true"), false)

	case "night-only":
		if len(args) != 2 {
			return fmt.Errorf("night-only needs on or off")
		}
		on, err := parseSwitch(args[1])
		if err != nil {
			return err
		}
		return client.Publish(topics.NightOnly(), []byte(strconv.FormatBool(on)), true)

	case "name":
		if len(args) != 3 {
			return fmt.Errorf("name needs a sensor id and a name")
		}
		// quoted so names like "1" stay strings
		payload, err := json.Marshal(args[2])
		if err != nil {
			return err
		}
		return client.Publish(topics.Name(args[1]), payload, true)
	}
	return fmt.Errorf("unknown command %q", args[0])
}

func parseSwitch(s string) (bool, error) {
	switch s {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

// the status is retained so subscribing is enough to get the latest one
func printStatus(client *bus.Client, topics bus.Topics, timeout time.Duration) error {
	statuses := make(chan models.PairingStatus, 1)
	err := client.Subscribe(topics.Status(), func(msg bus.Message) error {
		status := models.PairingStatus{}
		if err := json.Unmarshal(msg.Payload, &status); err != nil {
			return fmt.Errorf("%w: %w", bus.ErrMalformedPayload, err)
		}
		select {
		case statuses <- status:
		default:
		}
		return nil
	})
	if err != nil {
		return err
	}

	select {
	case status := <-statuses:
		line := status.Status
		if status.Host != "" {
			line += " " + status.Host
		}
		fmt.Printf("%s (%s)\n", line, time.UnixMilli(status.Ts).Format("2006/01/02 15:04:05"))
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("no status published under %s", topics.Status())
	}
}
