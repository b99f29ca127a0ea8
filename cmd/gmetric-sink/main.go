// gmetric-sink delivers metrics to Ganglia gmond.
//
// Metrics are taken either from --name/--value or, with --stdin, from
// "name|value|timestamp" lines. Each metric is sent as metadata and value
// gmetric packets over UDP or multicast.
//
// Exit codes: 0 on success, 1 when there is no input, 2 when the type of
// some value can't be guessed and --type is not given, 3 on other errors.
package main

/*

Copyright (c) 2017 Andrey Smirnov

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/mheffner/statsite/sinks/gmetric"
)

const version = "3.2.0"

const (
	exitOK = iota
	exitNoInput
	exitUnclassifiable
	exitFailure
)

type options struct {
	protocol string
	host     string
	port     int
	name     string
	value    string
	units    string
	slope    string
	typ      string
	tmax     uint32
	dmin     uint32
	group    string
	spoof    string
	stdin    bool
	verbose  bool
	version  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options

	flagSet := pflag.NewFlagSet("gmetric-sink", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.protocol, "protocol", "udp", "the gmetric internet protocol, either udp or multicast")
	flagSet.StringVar(&opts.host, "host", "127.0.0.1", "gmond aggregator hostname to send data to")
	flagSet.IntVar(&opts.port, "port", gmetric.DefaultPort, "gmond aggregator port to send data to")
	flagSet.StringVar(&opts.name, "name", "", "the name of the metric, can be omitted and read from stdin")
	flagSet.StringVar(&opts.value, "value", "", "the value of the metric, can be omitted and read from stdin")
	flagSet.StringVar(&opts.units, "units", "", "the units for the value, e.g. 'kb/sec'")
	flagSet.StringVar(&opts.slope, "slope", "both", "the sign of the derivative of the value over time, one of zero, positive, negative, both, unspecified")
	flagSet.StringVar(&opts.typ, "type", "", "the value data type, one of string, uint16, int16, uint32, int32, float, double, timestamp (guessed if omitted)")
	flagSet.Uint32Var(&opts.tmax, "tmax", gmetric.DefaultTmax, "the maximum time in seconds between gmetric calls")
	flagSet.Uint32Var(&opts.dmin, "dmin", 0, "the lifetime in seconds of this metric, 0 means unlimited")
	flagSet.StringVar(&opts.group, "group", "", "group metric belongs to, ganglia shows it as no_group if not specified")
	flagSet.StringVar(&opts.spoof, "spoof", "", "the address to spoof (ip:host), metric is not spoofed if not specified")
	flagSet.BoolVar(&opts.stdin, "stdin", false, "read metrics from stdin in 'key|value|timestamp' format")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log chosen type of every metric")
	flagSet.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitNoInput
	}

	if opts.version {
		fmt.Fprintf(stdout, "gmetric-sink %s\n", version)
		return exitOK
	}

	log := logrus.New()
	log.SetOutput(stderr)
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	var samples []gmetric.Sample

	switch {
	case opts.stdin:
		var err error

		if samples, err = gmetric.ReadSamples(stdin); err != nil {
			log.WithError(err).Error("failed to read metrics")
			return exitFailure
		}
	case flagSet.Changed("name") && flagSet.Changed("value"):
		samples = []gmetric.Sample{{Name: opts.name, Value: opts.value, Timestamp: "0000000"}}
	default:
		log.Error("either --stdin or --name and --value should be given")
		return exitNoInput
	}

	template, protocol, err := opts.template()
	if err != nil {
		log.WithError(err).Error("invalid arguments")
		return exitFailure
	}

	client, err := gmetric.NewClient(net.JoinHostPort(opts.host, strconv.Itoa(opts.port)),
		gmetric.Protocol(protocol),
		gmetric.Logger(log))
	if err != nil {
		log.WithError(err).Error("failed to open gmetric client")
		return exitFailure
	}
	defer client.Close()

	for _, sample := range samples {
		log.WithFields(logrus.Fields{
			"metric": sample.Name,
			"type":   template.Type,
		}).Debug("sending metric")

		if err = client.SendValue(sample.Name, sample.Value, template); err != nil {
			if errors.Is(err, gmetric.ErrUnclassifiable) {
				log.WithError(err).WithField("metric", sample.Name).Error("can't guess metric type")
				return exitUnclassifiable
			}

			log.WithError(err).WithField("metric", sample.Name).Error("failed to send metric")
			return exitFailure
		}
	}

	return exitOK
}

// template builds metric shared by all samples from command line flags
func (opts *options) template() (gmetric.Metric, gmetric.TransportProtocol, error) {
	var (
		m   gmetric.Metric
		err error
	)

	protocol, err := gmetric.ParseProtocol(opts.protocol)
	if err != nil {
		return m, protocol, err
	}

	if m.Slope, err = gmetric.ParseSlope(opts.slope); err != nil {
		return m, protocol, err
	}

	if m.Type, err = gmetric.ParseType(opts.typ); err != nil {
		return m, protocol, err
	}

	m.Units = opts.units
	m.Tmax = opts.tmax
	m.Dmax = opts.dmin
	m.Group = opts.group
	m.Spoof = opts.spoof

	return m, protocol, nil
}
