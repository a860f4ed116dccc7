package validating

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
)

// ValidationResult é o resultado da verificação de acesso à página
type ValidationResult struct {
	Valid     bool   `json:"valid"`
	PageName  string `json:"page_name,omitempty"`
	Error     string `json:"error,omitempty"`
	Diagnosis string `json:"diagnosis,omitempty"`
}

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

type PageValidator interface {
	Validate(ctx context.Context, pageID string) *ValidationResult
}

type Service struct {
	integrator meta.Integrator
	session    *metaclient.Session
}

func NewService(integrator meta.Integrator, session *metaclient.Session) PageValidator {
	return &Service{
		integrator: integrator,
		session:    session,
	}
}

// Validate confirma que a página é legível e está vinculada à conta de anúncios.
// Quando a leitura direta é negada por permissão, procura a página em promote_pages.
func (s *Service) Validate(ctx context.Context, pageID string) *ValidationResult {
	accountID, err := s.session.RequireAccount()
	if err != nil {
		return &ValidationResult{Valid: false, Error: err.Error()}
	}

	fields := logrus.Fields{
		"account_id": accountID,
		"page_id":    pageID,
	}

	page, err := s.integrator.GetPage(ctx, pageID)
	if err != nil {
		apiErr, ok := metaclient.AsAPIError(err)
		if !ok || !apiErr.IsPermissionDenied() {
			logrus.WithFields(fields).WithError(err).Warn("validating: page read failed")
			return &ValidationResult{
				Valid:     false,
				Error:     err.Error(),
				Diagnosis: "The page could not be read. Check that the page id is correct and that the token has pages_read_engagement.",
			}
		}

		logrus.WithFields(fields).WithField("code", apiErr.Code).Info("validating: page read denied, checking promote_pages")
		return s.validateByPromotePages(ctx, accountID, pageID, fields)
	}

	pages, err := s.integrator.ListPromotePages(ctx, accountID)
	if err != nil {
		logrus.WithFields(fields).WithError(err).Warn("validating: could not list promote pages")
		return &ValidationResult{
			Valid:    false,
			PageName: page.Name,
			Error:    err.Error(),
			Diagnosis: "The page is readable but the ad account's promotable pages could not be listed, " +
				"so the link between page and ad account was not confirmed.",
		}
	}

	if _, found := findPage(pages, pageID); !found {
		return &ValidationResult{
			Valid:     false,
			PageName:  page.Name,
			Error:     fmt.Sprintf("page %s is not linked to ad account %s", pageID, accountID),
			Diagnosis: missingLinkDiagnosis(page.Name, accountID),
		}
	}

	logrus.WithFields(fields).Debug("validating: page is readable and linked")
	return &ValidationResult{Valid: true, PageName: page.Name}
}

func (s *Service) validateByPromotePages(ctx context.Context, accountID, pageID string, fields logrus.Fields) *ValidationResult {
	pages, err := s.integrator.ListPromotePages(ctx, accountID)
	if err != nil {
		logrus.WithFields(fields).WithError(err).Warn("validating: promote pages fallback failed")
		return &ValidationResult{
			Valid:     false,
			Error:     err.Error(),
			Diagnosis: "The page read was denied and the ad account's promotable pages could not be listed.",
		}
	}

	page, found := findPage(pages, pageID)
	if !found {
		return &ValidationResult{
			Valid:     false,
			Error:     fmt.Sprintf("page %s is not readable and is not listed in the promotable pages of %s", pageID, accountID),
			Diagnosis: missingLinkDiagnosis(pageID, accountID),
		}
	}

	logrus.WithFields(fields).Debug("validating: page found through promote_pages")
	return &ValidationResult{Valid: true, PageName: page.Name}
}

func findPage(pages []metadomain.Page, pageID string) (*metadomain.Page, bool) {
	resp := metadomain.PromotePagesResponse{Data: pages}
	return resp.Find(pageID)
}

func missingLinkDiagnosis(page, accountID string) string {
	return fmt.Sprintf(
		"Page %q is not linked to ad account %s. In Business Manager, add the page to the same business as the ad account "+
			"and assign it to the ad account (Business Settings > Accounts > Pages).",
		page, accountID,
	)
}
