package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"civicdesk/internal/forms/handler/mocks"
	"civicdesk/internal/forms/models"
	"civicdesk/internal/forms/schema"
	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
	"civicdesk/pkg/testutil"
)

type FormsHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	owner   domain.Actor
}

func TestFormsHandlerSuite(t *testing.T) {
	suite.Run(t, new(FormsHandlerSuite))
}

func (s *FormsHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(s.service, logger, nil).Register(s.router)
	s.owner = testutil.NewActor("owner")
}

func (s *FormsHandlerSuite) sampleForm() *models.Form {
	sc, err := schema.New([]schema.FieldDescriptor{
		{ID: "topic", Type: schema.FieldSelect, Label: "Topic", Required: true, Options: []schema.Option{{Value: "a"}, {Value: "b"}}},
	})
	s.Require().NoError(err)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	form, err := models.NewForm(domain.NewFormID(), s.owner.ID, "Survey", "", models.CategoryGeneral, sc, true, true, now)
	s.Require().NoError(err)
	return form
}

func (s *FormsHandlerSuite) TestCreate() {
	s.Run("requires an actor", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/forms", map[string]any{"title": "x"})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("rejects a body without fields before reaching the service", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/forms", map[string]any{"title": "Survey"})
		rr := testutil.DoRequest(s.router, testutil.WithActor(req, s.owner))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertFieldError(s.T(), rr, "fields", "required")
	})

	s.Run("defaults the category and returns 201", func() {
		form := s.sampleForm()
		s.service.EXPECT().CreateForm(gomock.Any(), s.owner, gomock.Any()).DoAndReturn(
			func(_ any, _ domain.Actor, in models.FormInput) (*models.Form, error) {
				s.Equal(models.CategoryGeneral, in.Category)
				s.Equal("Survey", in.Title)
				s.Require().Len(in.Fields, 1)
				s.Equal("b", in.Fields[0].Options[1].Value)
				return form, nil
			})

		body := `{"title":" Survey ","fields":[{"id":"topic","type":"select","label":"Topic","options":["a","b"]}]}`
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/forms", body)
		rr := testutil.DoRequest(s.router, testutil.WithActor(req, s.owner))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "id", form.ID.String())
	})
}

func (s *FormsHandlerSuite) TestSubmit() {
	form := s.sampleForm()

	s.Run("passes answers and the anonymous flag through", func() {
		s.service.EXPECT().Submit(gomock.Any(), domain.Actor{}, form.ID, gomock.Any()).DoAndReturn(
			func(_ any, _ domain.Actor, _ domain.FormID, in models.SubmitInput) (*models.Response, error) {
				s.True(in.Anonymous)
				raw, ok := in.Answers.(json.RawMessage)
				s.Require().True(ok)
				s.JSONEq(`{"topic":"a"}`, string(raw))
				return &models.Response{ID: domain.NewResponseID(), FormID: form.ID, SubmitterName: "Anonymous"}, nil
			})

		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/forms/"+form.ID.String()+"/responses",
			`{"response_data":{"topic":"a"},"is_anonymous":true}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "submitter_name", "Anonymous")
	})

	s.Run("maps field errors to 400 with the field map", func() {
		s.service.EXPECT().Submit(gomock.Any(), gomock.Any(), form.ID, gomock.Any()).Return(nil,
			dErrors.NewFieldErrors("response does not match the form", dErrors.FieldErrors{
				"topic": {Code: dErrors.CodeInvalidChoice, Message: "choose one of: a, b"},
			}))

		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/forms/"+form.ID.String()+"/responses",
			`{"response_data":{"topic":"c"},"submitter_name":"Sara"}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_choice")
		testutil.AssertFieldError(s.T(), rr, "topic", "invalid_choice")
	})

	s.Run("requires response_data", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/forms/"+form.ID.String()+"/responses",
			`{"submitter_name":"Sara"}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertFieldError(s.T(), rr, "response_data", "required")
	})

	s.Run("rejects a malformed form id", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/forms/not-a-uuid/responses", `{}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})
}

func (s *FormsHandlerSuite) TestGetHidesClosedForms() {
	id := domain.NewFormID()
	s.service.EXPECT().GetForm(gomock.Any(), domain.Actor{}, id).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "form not found"))

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/forms/"+id.String()))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *FormsHandlerSuite) TestListMineRoutesBeforeID() {
	s.service.EXPECT().ListMine(gomock.Any(), s.owner, models.Filter{Search: "water", Limit: 5}).
		Return([]*models.FormSummary{{Form: s.sampleForm(), ResponseCount: 2}}, nil)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/forms/mine?search=water&limit=5")
	rr := testutil.DoRequest(s.router, testutil.WithActor(req, s.owner))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "count", float64(1))
}

func (s *FormsHandlerSuite) TestListRejectsBadPaging() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/forms?limit=ten"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
}

func (s *FormsHandlerSuite) TestExportSetsAttachment() {
	id := domain.NewFormID()
	s.service.EXPECT().Export(gomock.Any(), s.owner, id).Return(&models.Export{
		FormTitle: "Survey",
		Responses: []models.ExportedAnswer{{SubmitterName: "Sara", Answers: map[string]any{"topic": "a"}}},
	}, nil)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/forms/"+id.String()+"/export")
	rr := testutil.DoRequest(s.router, testutil.WithActor(req, s.owner))
	testutil.AssertStatusOK(s.T(), rr)
	s.Contains(rr.Header().Get("Content-Disposition"), "form_responses_"+id.String())
	testutil.AssertJSONContains(s.T(), rr, "form_title", "Survey")
}

func (s *FormsHandlerSuite) TestDeleteReturnsNoContent() {
	id := domain.NewFormID()
	s.service.EXPECT().DeleteForm(gomock.Any(), s.owner, id).Return(nil)

	req := testutil.NewRequest(s.T(), http.MethodDelete, "/forms/"+id.String())
	rr := testutil.DoRequest(s.router, testutil.WithActor(req, s.owner))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
}
