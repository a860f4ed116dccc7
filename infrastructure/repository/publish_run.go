package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const publishRunsTable = "publish_runs"

//go:generate mockgen -source=publish_run.go -destination=mocks/publish_run.go -package=mocks

// PublishRunRepository guarda o resultado de cada publicação, inclusive as entidades órfãs de uma falha parcial
type PublishRunRepository interface {
	Save(ctx context.Context, run *domain.PublishRun) error
	GetByID(ctx context.Context, organizationID, id string) (*domain.PublishRun, error)
}

type publishRunRepository struct {
	conn postgres.Queryer
	now  func() time.Time
}

func NewPublishRunRepository(conn postgres.Queryer) PublishRunRepository {
	return &publishRunRepository{
		conn: conn,
		now:  time.Now,
	}
}

// Save preenche ID e CreatedAt do run
func (r *publishRunRepository) Save(ctx context.Context, run *domain.PublishRun) error {
	id, err := utils.GenerateID()
	if err != nil {
		return errors.Wrap(err, "generate publish run id")
	}

	result, err := json.Marshal(run.Result)
	if err != nil {
		return errors.Wrap(err, "encode publish result")
	}

	run.ID = id
	run.CreatedAt = r.now().UTC()

	var campaignID, adSetID string
	success := false
	if run.Result != nil {
		campaignID = run.Result.CampaignID
		adSetID = run.Result.AdSetID
		success = run.Result.Success
	}

	query, args, err := squirrel.
		Insert(publishRunsTable).
		Columns("id", "organization_id", "mode", "success", "campaign_id", "adset_id", "result", "created_at").
		Values(run.ID, run.OrganizationID, string(run.Mode), success, campaignID, adSetID, string(result), run.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build publish run insert")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "save publish run %s", run.ID)
	}

	logrus.WithFields(logrus.Fields{
		"run_id":          run.ID,
		"organization_id": run.OrganizationID,
		"success":         success,
	}).Debug("repository: publish run saved")

	return nil
}

// GetByID retorna nil, nil quando o run não existe ou pertence a outra organização
func (r *publishRunRepository) GetByID(ctx context.Context, organizationID, id string) (*domain.PublishRun, error) {
	query, args, err := squirrel.
		Select("id, organization_id, mode, result, created_at").
		From(publishRunsTable).
		Where(squirrel.Eq{"id": id, "organization_id": organizationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build publish run query")
	}

	run := &domain.PublishRun{}
	var (
		mode   string
		result []byte
	)

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&run.ID, &run.OrganizationID, &mode, &result, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get publish run %s", id)
	}

	run.Mode = domain.PublishMode(mode)
	if len(result) > 0 {
		run.Result = &domain.PublishResult{}
		if err := json.Unmarshal(result, run.Result); err != nil {
			return nil, errors.Wrapf(err, "decode publish run %s", id)
		}
	}

	return run, nil
}
