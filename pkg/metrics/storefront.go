package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics counts shopper-facing operations. A nil receiver is a no-op
// so services can run without a registry in tests.
type StorefrontMetrics struct {
	cartOps     *prometheus.CounterVec
	checkouts   *prometheus.CounterVec
	forms       *prometheus.CounterVec
	visibleHist prometheus.Histogram
	fallbacks   *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkout_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	forms := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_form_submissions_total",
		Help: "Newsletter and contact submissions by outcome.",
	}, []string{"form", "outcome"})
	visible := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_catalog_filter_visible",
		Help:    "Number of product cards left visible by a filter request.",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
	})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_storage_fallbacks_total",
		Help: "Stored values that could not be decoded and were treated as empty.",
	}, []string{"key"})
	reg.MustRegister(cartOps, checkouts, forms, visible, fallbacks)
	return &StorefrontMetrics{
		cartOps:     cartOps,
		checkouts:   checkouts,
		forms:       forms,
		visibleHist: visible,
		fallbacks:   fallbacks,
	}
}

// IncCartOp counts one cart mutation.
func (m *StorefrontMetrics) IncCartOp(op string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheckout counts one checkout outcome (prompted, placed, empty).
func (m *StorefrontMetrics) IncCheckout(outcome string) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncForm counts one form submission outcome.
func (m *StorefrontMetrics) IncForm(form, outcome string) {
	if m == nil || m.forms == nil {
		return
	}
	m.forms.WithLabelValues(normalizeLabel(form), normalizeLabel(outcome)).Inc()
}

// ObserveVisible records how many cards a filter left visible.
func (m *StorefrontMetrics) ObserveVisible(count int) {
	if m == nil || m.visibleHist == nil {
		return
	}
	m.visibleHist.Observe(float64(count))
}

// IncFallback counts a corrupt stored value that was read as empty.
func (m *StorefrontMetrics) IncFallback(key string) {
	if m == nil || m.fallbacks == nil {
		return
	}
	m.fallbacks.WithLabelValues(normalizeLabel(key)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
