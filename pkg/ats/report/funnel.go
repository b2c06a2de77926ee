package report

// ============================================================================
// Aggregate Funnel
// ============================================================================

// FunnelStage es un escalón del funnel agregado
type FunnelStage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SumRecords suma los contadores de todos los recruiters del rango.
func SumRecords(records []RecruiterPerformanceRecord) RecruiterPerformanceRecord {
	totals := RecruiterPerformanceRecord{Recruiter: "all"}
	for _, r := range records {
		totals.JobsAssigned += r.JobsAssigned
		totals.ProfilesSubmitted += r.ProfilesSubmitted
		totals.InternalReject += r.InternalReject
		totals.SentToClient += r.SentToClient
		totals.ClientReject += r.ClientReject

		totals.Interviews.Technical += r.Interviews.Technical
		totals.Interviews.TechnicalSelected += r.Interviews.TechnicalSelected
		totals.Interviews.TechnicalReject += r.Interviews.TechnicalReject
		totals.Interviews.L1 += r.Interviews.L1
		totals.Interviews.L1Selected += r.Interviews.L1Selected
		totals.Interviews.L1Reject += r.Interviews.L1Reject
		totals.Interviews.L2 += r.Interviews.L2
		totals.Interviews.L2Reject += r.Interviews.L2Reject
		totals.Interviews.EndClient += r.Interviews.EndClient
		totals.Interviews.EndClientReject += r.Interviews.EndClientReject

		totals.Offers.Made += r.Offers.Made
		totals.Offers.Accepted += r.Offers.Accepted
		totals.Offers.Rejected += r.Offers.Rejected

		totals.Joining.Joined += r.Joining.Joined
		totals.Joining.NoShow += r.Joining.NoShow
	}
	return totals
}

// BuildFunnel proyecta los totales al funnel ordenado del dashboard.
// Se espera decreciente pero no se valida: los recruiters pueden contar
// rondas por duplicado y eso es un problema de display, no del agregador.
func BuildFunnel(totals RecruiterPerformanceRecord) []FunnelStage {
	return []FunnelStage{
		{Name: "Profiles Submitted", Count: totals.ProfilesSubmitted},
		{Name: "Sent to Client", Count: totals.SentToClient},
		{Name: "Technical Interview", Count: totals.Interviews.Technical},
		{Name: "L1 Interview", Count: totals.Interviews.L1},
		{Name: "L2 Interview", Count: totals.Interviews.L2},
		{Name: "End Client Interview", Count: totals.Interviews.EndClient},
		{Name: "Offers Made", Count: totals.Offers.Made},
		{Name: "Offers Accepted", Count: totals.Offers.Accepted},
		{Name: "Joined", Count: totals.Joining.Joined},
	}
}
