package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	MethodRecommendations *prometheus.CounterVec
	Verifications         *prometheus.CounterVec
	TokensIssued          *prometheus.CounterVec
	TokenRedemptions      *prometheus.CounterVec
	OTPRequests           *prometheus.CounterVec
	JourneyTransitions    *prometheus.CounterVec
	LookupDuration        prometheus.Histogram
}

// New registers the verification metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers with reg. Tests pass a fresh prometheus.NewRegistry().
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MethodRecommendations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campuspass_method_recommendations_total",
			Help: "Recommended verification methods; method is \"none\" when nothing was eligible",
		}, []string{"method"}),
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campuspass_verifications_total",
			Help: "Completed verification attempts by method and outcome",
		}, []string{"method", "outcome"}),
		TokensIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campuspass_tokens_issued_total",
			Help: "Single-use tokens issued by kind",
		}, []string{"kind"}),
		TokenRedemptions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campuspass_token_redemptions_total",
			Help: "Token consume attempts by kind and outcome code",
		}, []string{"kind", "outcome"}),
		OTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campuspass_otp_requests_total",
			Help: "OTP challenges sent by channel",
		}, []string{"channel"}),
		JourneyTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campuspass_journey_transitions_total",
			Help: "Student verification journey transitions",
		}, []string{"from", "to"}),
		LookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "campuspass_registration_lookup_duration_seconds",
			Help:    "Duration of registration lookups including upstream latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

func (m *Metrics) IncrementRecommendation(method string) {
	m.MethodRecommendations.WithLabelValues(method).Inc()
}

func (m *Metrics) IncrementVerification(method, outcome string) {
	m.Verifications.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) IncrementTokenIssued(kind string) {
	m.TokensIssued.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementTokenRedemption(kind, outcome string) {
	m.TokenRedemptions.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) IncrementOTPRequest(channel string) {
	m.OTPRequests.WithLabelValues(channel).Inc()
}

func (m *Metrics) IncrementTransition(from, to string) {
	m.JourneyTransitions.WithLabelValues(from, to).Inc()
}

// ObserveLookup records the duration of a registration lookup.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveLookup(start time.Time) {
	m.LookupDuration.Observe(time.Since(start).Seconds())
}
