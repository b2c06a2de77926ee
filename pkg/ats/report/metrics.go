package report

// ============================================================================
// Derived Metrics
// ============================================================================
//
// Pure function over a RecruiterPerformanceRecord. Every ratio is zero-safe:
// division by zero yields 0, never NaN, Inf or a panic. Values are not
// clamped to 1 — a ratio above 100% is possible and meaningful when a single
// submission produces several independently counted interview rounds.

// DerivedMetric es una métrica de conversión derivada
type DerivedMetric struct {
	Name        string  `json:"name"`
	Formula     string  `json:"formula"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

// ratio divide con fallback a 0 cuando el denominador es 0.
func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// DeriveMetrics calcula las 11 métricas de conversión del recruiter.
func DeriveMetrics(r RecruiterPerformanceRecord) []DerivedMetric {
	interviewSum := r.Interviews.Sum()
	clientAcceptance := interviewSum + r.Offers.Made + r.Joining.Joined

	return []DerivedMetric{
		{
			Name:        "Submission to Client Rate",
			Formula:     "sent_to_client / profiles_submitted",
			Value:       ratio(r.SentToClient, r.ProfilesSubmitted),
			Description: "Share of submitted profiles that were forwarded to the client",
		},
		{
			Name:        "Client Acceptance Rate",
			Formula:     "(interview_sum + offers_made + joined) / sent_to_client",
			Value:       ratio(clientAcceptance, r.SentToClient),
			Description: "Client-side activity generated per profile sent to the client",
		},
		{
			Name:        "Interview Conversion Rate",
			Formula:     "interview_sum / sent_to_client",
			Value:       ratio(interviewSum, r.SentToClient),
			Description: "Interview rounds generated per profile sent to the client",
		},
		{
			Name:        "Technical to L1 Rate",
			Formula:     "l1 / technical_selected",
			Value:       ratio(r.Interviews.L1, r.Interviews.TechnicalSelected),
			Description: "Candidates reaching L1 out of those passing the technical round",
		},
		{
			Name:        "L1 to L2 Rate",
			Formula:     "l2 / l1_selected",
			Value:       ratio(r.Interviews.L2, r.Interviews.L1Selected),
			Description: "Candidates reaching L2 out of those passing L1",
		},
		{
			Name:        "L2 to End Client Rate",
			Formula:     "end_client / l2",
			Value:       ratio(r.Interviews.EndClient, r.Interviews.L2),
			Description: "Candidates reaching the end-client round out of those in L2",
		},
		{
			Name:        "End Client to Offer Rate",
			Formula:     "offers_made / end_client",
			Value:       ratio(r.Offers.Made, r.Interviews.EndClient),
			Description: "Offers made out of end-client interviews",
		},
		{
			Name:        "Offer Acceptance Rate",
			Formula:     "offers_accepted / offers_made",
			Value:       ratio(r.Offers.Accepted, r.Offers.Made),
			Description: "Offers accepted out of offers made",
		},
		{
			Name:        "Join Rate",
			Formula:     "joined / offers_accepted",
			Value:       ratio(r.Joining.Joined, r.Offers.Accepted),
			Description: "Candidates that joined out of accepted offers",
		},
		{
			Name:        "Funnel Efficiency",
			Formula:     "joined / profiles_submitted",
			Value:       ratio(r.Joining.Joined, r.ProfilesSubmitted),
			Description: "End-to-end conversion from submission to joining",
		},
		{
			Name:        "Client Reject Rate",
			Formula:     "client_reject / sent_to_client",
			Value:       ratio(r.ClientReject, r.SentToClient),
			Description: "Profiles rejected by the client out of those sent",
		},
	}
}
