// Package metrics exposes the adapter's counters and wires the optional
// VictoriaMetrics push target.
package metrics

import (
	"log"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

var (
	ChargesCreated   = metrics.NewCounter(`pix_charges_created_total`)
	ChargeFailures   = metrics.NewCounter(`pix_charge_failures_total`)
	StatusFallbacks  = metrics.NewCounter(`pix_status_fallback_attempts_total`)
	StatusNotFound   = metrics.NewCounter(`pix_status_not_found_total`)
	WebhooksReceived = metrics.NewCounter(`pix_webhooks_received_total`)
	WebhooksRejected = metrics.NewCounter(`pix_webhooks_rejected_total`)
)

// Setup initializes periodic metrics push when a push URL is configured.
// Without one, counters stay local and are served from the /metrics endpoint.
func Setup(pushURL string, intervalMs int, commonLabels string) {
	if pushURL == "" {
		return
	}

	err := metrics.InitPush(pushURL, time.Duration(intervalMs)*time.Millisecond, commonLabels, true)
	if err != nil {
		log.Printf("Error initializing metrics push: %v", err)
	}
}
