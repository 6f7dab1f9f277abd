package serialio

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quimiview_serial_frames_decoded_total",
		Help: "Frames extracted from the serial stream and decoded as JSON.",
	})
	framesInvalid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quimiview_serial_frames_invalid_total",
		Help: "Brace-delimited spans that failed JSON decoding and were discarded.",
	})
	readErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quimiview_serial_read_errors_total",
		Help: "Transient serial read errors observed by the listener loop.",
	})
)
