package candidatesrv

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/nexhire/nexhire/pkg/ats/candidate"
	"github.com/nexhire/nexhire/pkg/ats/status/statussrv"
	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/nexhire/nexhire/pkg/logx"
	"github.com/nexhire/nexhire/pkg/stream"
)

// CandidateService proporciona operaciones de negocio para candidatos
type CandidateService struct {
	candidateRepo candidate.CandidateRepository
	statusSvc     *statussrv.StatusService
	notifier      stream.Notifier
}

// NewCandidateService crea una nueva instancia del servicio de candidatos
func NewCandidateService(
	candidateRepo candidate.CandidateRepository,
	statusSvc *statussrv.StatusService,
	notifier stream.Notifier,
) *CandidateService {
	return &CandidateService{
		candidateRepo: candidateRepo,
		statusSvc:     statusSvc,
		notifier:      notifier,
	}
}

// CreateCandidate da de alta un candidato en un job
func (s *CandidateService) CreateCandidate(ctx context.Context, tenantID kernel.TenantID, req candidate.CreateCandidateRequest) (*candidate.Candidate, error) {
	exists, err := s.candidateRepo.ExistsByEmailAndJob(ctx, req.Email, req.JobID, tenantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check candidate existence", errx.TypeInternal)
	}
	if exists {
		return nil, candidate.ErrCandidateAlreadyExists().
			WithDetail("email", req.Email).
			WithDetail("job_id", req.JobID.String())
	}

	legacyStatus := req.LegacyStatus
	if legacyStatus == "" {
		legacyStatus = candidate.StageNew
	}

	var metadata json.RawMessage
	if req.Metadata != nil {
		metadata, err = json.Marshal(req.Metadata)
		if err != nil {
			return nil, errx.Wrap(err, "failed to marshal candidate metadata", errx.TypeValidation)
		}
	}

	now := time.Now()
	newCandidate := &candidate.Candidate{
		ID:           kernel.NewCandidateID(uuid.NewString()),
		TenantID:     tenantID,
		JobID:        req.JobID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Skills:       pq.StringArray(req.Skills),
		Metadata:     types.JSONText(metadata),
		LegacyStatus: legacyStatus,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.candidateRepo.Save(ctx, *newCandidate); err != nil {
		return nil, errx.Wrap(err, "failed to save candidate", errx.TypeInternal)
	}

	s.publishChange(ctx, tenantID, newCandidate.ID)
	return newCandidate, nil
}

// GetCandidate obtiene un candidato con su proyección de pipeline
func (s *CandidateService) GetCandidate(ctx context.Context, tenantID kernel.TenantID, id kernel.CandidateID) (*candidate.CandidateView, error) {
	c, err := s.candidateRepo.FindByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	views, err := s.project(ctx, tenantID, []*candidate.Candidate{c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetCandidatesForJob obtiene los candidatos de un job, proyectados y filtrados
func (s *CandidateService) GetCandidatesForJob(ctx context.Context, tenantID kernel.TenantID, jobID kernel.JobID, filter candidate.Filter) (*candidate.CandidateListResponse, error) {
	cands, err := s.candidateRepo.FindByJob(ctx, jobID, tenantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load candidates for job", errx.TypeInternal).
			WithDetail("job_id", jobID.String())
	}
	return s.listResponse(ctx, tenantID, cands, filter)
}

// ListCandidates obtiene todos los candidatos del tenant, proyectados y filtrados
func (s *CandidateService) ListCandidates(ctx context.Context, tenantID kernel.TenantID, filter candidate.Filter) (*candidate.CandidateListResponse, error) {
	cands, err := s.candidateRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load candidates", errx.TypeInternal)
	}
	return s.listResponse(ctx, tenantID, cands, filter)
}

// UpdateCandidateStatus mueve al candidato a un sub-estado de la taxonomía.
// El sub-estado debe resolver contra la taxonomía del tenant; a partir de aquí
// el par resuelto tiene precedencia sobre el string legacy.
func (s *CandidateService) UpdateCandidateStatus(ctx context.Context, tenantID kernel.TenantID, id kernel.CandidateID, req candidate.UpdateCandidateStatusRequest) (*candidate.CandidateView, error) {
	c, err := s.candidateRepo.FindByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	pair, err := s.statusSvc.ResolveSubStatus(ctx, tenantID, req.SubStatusID)
	if err != nil {
		return nil, candidate.ErrInvalidStatusRef().
			WithDetail("sub_status_id", req.SubStatusID.String())
	}

	c.SetStatus(pair.Main.ID, pair.Sub.ID)
	if err := s.candidateRepo.Save(ctx, *c); err != nil {
		return nil, errx.Wrap(err, "failed to update candidate status", errx.TypeInternal).
			WithDetail("candidate_id", id.String())
	}

	s.publishChange(ctx, tenantID, c.ID)

	ref := candidate.StatusRef{Kind: candidate.StatusRefResolved, Legacy: c.LegacyStatus, Pair: pair}
	return &candidate.CandidateView{
		Candidate:  *c,
		Status:     ref,
		Projection: candidate.Project(ref),
	}, nil
}

// project resuelve el StatusRef de cada candidato contra la taxonomía y
// calcula su proyección. Las referencias huérfanas degradan a legacy con un
// warning; nunca rompen el listado.
func (s *CandidateService) project(ctx context.Context, tenantID kernel.TenantID, cands []*candidate.Candidate) ([]candidate.CandidateView, error) {
	taxonomy, err := s.statusSvc.GetTaxonomy(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	views := make([]candidate.CandidateView, 0, len(cands))
	for _, c := range cands {
		ref, err := candidate.ResolveStatus(c, taxonomy)
		if err != nil {
			logx.WithFields(logx.Fields{
				"candidate_id": c.ID.String(),
				"tenant_id":    tenantID.String(),
			}).Warnf("candidate status reference does not resolve, falling back to legacy: %v", err)
		}
		views = append(views, candidate.CandidateView{
			Candidate:  *c,
			Status:     ref,
			Projection: candidate.Project(ref),
		})
	}
	return views, nil
}

func (s *CandidateService) listResponse(ctx context.Context, tenantID kernel.TenantID, cands []*candidate.Candidate, filter candidate.Filter) (*candidate.CandidateListResponse, error) {
	views, err := s.project(ctx, tenantID, cands)
	if err != nil {
		return nil, err
	}
	views = filter.Apply(views)
	return &candidate.CandidateListResponse{
		Candidates: views,
		Total:      len(views),
	}, nil
}

func (s *CandidateService) publishChange(ctx context.Context, tenantID kernel.TenantID, id kernel.CandidateID) {
	if s.notifier == nil {
		return
	}
	event := stream.ChangeEvent{
		Topic:    stream.TopicCandidates,
		TenantID: tenantID,
		EntityID: id.String(),
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		// Subscribers re-fetch on the next event; a lost notification is not
		// a write failure.
		logx.WithFields(logx.Fields{"candidate_id": id.String()}).
			Warnf("failed to publish candidate change: %v", err)
	}
}
