package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/ebenezer-app/ebenezer/internal/encoding"
	"github.com/ebenezer-app/ebenezer/internal/export"
	apihttp "github.com/ebenezer-app/ebenezer/internal/http"
	"github.com/ebenezer-app/ebenezer/internal/http/auth"
	exporthttp "github.com/ebenezer-app/ebenezer/internal/http/export"
	"github.com/ebenezer-app/ebenezer/internal/http/importcsv"
	movementhttp "github.com/ebenezer-app/ebenezer/internal/http/movement"
	"github.com/ebenezer-app/ebenezer/internal/http/summary"
	"github.com/ebenezer-app/ebenezer/internal/identity"
	"github.com/ebenezer-app/ebenezer/internal/importer"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

type fixture struct {
	handler   http.Handler
	users     *identity.MockRepository
	movements *movement.MockRepository
	tokens    *identity.Tokens
	user      *identity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := identity.NewMockRepository(ctrl)
	movements := movement.NewMockRepository(ctrl)

	tokens := identity.NewTokens("test-secret", time.Hour)
	identitySvc := identity.NewService(users, identity.WithHashCost(bcrypt.MinCost))
	movementSvc := movement.NewService(movements)
	exportSvc := export.NewService(movementSvc)

	handler := apihttp.New(
		apihttp.Options{Timeout: 5 * time.Second, AllowedOrigins: []string{"*"}},
		tokens,
		auth.NewHandler(identitySvc, tokens),
		movementhttp.NewHandler(movementSvc),
		summary.NewHandler(exportSvc),
		exporthttp.NewHandler(exportSvc),
		importcsv.NewHandler(importer.NewService(movementSvc)),
	)

	return &fixture{
		handler:   handler,
		users:     users,
		movements: movements,
		tokens:    tokens,
		user:      &identity.User{ID: uuid.New(), Email: "anna@example.com"},
	}
}

func (f *fixture) do(t *testing.T, method, path string, body []byte, contentType string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequestWithContext(context.Background(), method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if authed {
		token, err := f.tokens.Issue(f.user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	return rec
}

func (f *fixture) json(t *testing.T, method, path string, v any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var body []byte
	if v != nil {
		var err error
		body, err = json.Marshal(v)
		require.NoError(t, err)
	}

	return f.do(t, method, path, body, "application/json", authed)
}

func stored(userID uuid.UUID) []*movement.Movement {
	return []*movement.Movement{
		{
			ID: uuid.New(), UserID: userID, Type: movement.TypeUscita, Sector: movement.SectorLibreria,
			PaymentMethod: movement.PaymentPaypal, Category: movement.CategoryAffitto,
			Description: "Affitto", Amount: 3050, Date: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: uuid.New(), UserID: userID, Type: movement.TypeEntrata, Sector: movement.SectorDecimaOfferta,
			PaymentMethod: movement.PaymentContanti, Category: movement.CategoryDonazioni,
			Description: "Offerta", Amount: 10000, Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestAuthRoutes(t *testing.T) {
	f := newFixture(t)
	creds := map[string]string{"email": "Luca@Example.com", "password": "segreta"}

	f.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)

	rec := f.json(t, http.MethodPost, "/api/v1/auth/signup", creds, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var session struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "luca@example.com", session.User.Email)

	f.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(identity.ErrEmailAlreadyRegistered)

	rec = f.json(t, http.MethodPost, "/api/v1/auth/signup", creds, false)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email già registrata")

	f.users.EXPECT().GetUserByEmail(gomock.Any(), "luca@example.com").Return(nil, identity.ErrNotFound)

	rec = f.json(t, http.MethodPost, "/api/v1/auth/signin", creds, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credenziali non valide")

	f.users.EXPECT().GetUser(gomock.Any(), f.user.ID).Return(f.user, nil)

	rec = f.json(t, http.MethodGet, "/api/v1/auth/me", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), f.user.Email)

	rec = f.json(t, http.MethodPost, "/api/v1/auth/signout", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/api/v1/movements", "/api/v1/summary", "/api/v1/export/csv", "/api/v1/auth/me"} {
		rec := f.do(t, http.MethodGet, path, nil, "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Utente non autenticato", path)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movements", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMovementRoutes(t *testing.T) {
	f := newFixture(t)

	t.Run("Create", func(t *testing.T) {
		f.movements.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m *movement.Movement) error {
				assert.Equal(t, f.user.ID, m.UserID)
				assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), m.Date)

				return nil
			})

		rec := f.json(t, http.MethodPost, "/api/v1/movements", map[string]any{
			"tipo":             "uscita",
			"settore":          "bar",
			"metodo_pagamento": "sumup",
			"categoria":        "forniture",
			"descrizione":      "Caffè",
			"importo":          250,
			"data":             "2026-01-05",
		}, true)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"importo_formattato":"€2.50"`)
	})

	t.Run("CreateInvalid", func(t *testing.T) {
		rec := f.json(t, http.MethodPost, "/api/v1/movements", map[string]any{
			"tipo":             "uscita",
			"metodo_pagamento": "sumup",
			"categoria":        "forniture",
			"descrizione":      "Caffè",
			"importo":          250,
		}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "settore")
	})

	t.Run("CreateBadDate", func(t *testing.T) {
		rec := f.json(t, http.MethodPost, "/api/v1/movements", map[string]any{
			"tipo": "uscita", "settore": "bar", "metodo_pagamento": "sumup",
			"categoria": "forniture", "descrizione": "Caffè", "importo": 250, "data": "05/01/2026",
		}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "data")
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		f.movements.EXPECT().ListMovements(gomock.Any(), f.user.ID).Return(stored(f.user.ID), nil)

		rec := f.json(t, http.MethodGet, "/api/v1/movements", nil, true)
		require.Equal(t, http.StatusOK, rec.Code)

		var got []struct {
			Date string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "2026-02-01", got[0].Date)
		assert.Equal(t, "2026-01-31", got[1].Date)
	})

	t.Run("Delete", func(t *testing.T) {
		id := uuid.New()
		f.movements.EXPECT().DeleteMovement(gomock.Any(), id, f.user.ID).Return(nil)

		rec := f.json(t, http.MethodDelete, "/api/v1/movements/"+id.String(), nil, true)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("DeleteInvalidID", func(t *testing.T) {
		rec := f.json(t, http.MethodDelete, "/api/v1/movements/nope", nil, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSummaryRoute(t *testing.T) {
	f := newFixture(t)
	f.movements.EXPECT().ListMovements(gomock.Any(), f.user.ID).Return(stored(f.user.ID), nil)

	rec := f.json(t, http.MethodGet, "/api/v1/summary", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		TotalEntrate int64 `json:"totale_entrate"`
		TotalUscite  int64 `json:"totale_uscite"`
		Saldo        int64 `json:"saldo"`
		Categories   []struct {
			Label string `json:"etichetta"`
			Share int    `json:"percentuale"`
		} `json:"categorie"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, int64(10000), got.TotalEntrate)
	assert.Equal(t, int64(3050), got.TotalUscite)
	assert.Equal(t, int64(6950), got.Saldo)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Affitto", got.Categories[0].Label)
	assert.Equal(t, 100, got.Categories[0].Share)
}

func TestExportRoutes(t *testing.T) {
	f := newFixture(t)

	f.movements.EXPECT().ListMovements(gomock.Any(), f.user.ID).Return(stored(f.user.ID), nil)

	rec := f.do(t, http.MethodGet, "/api/v1/export/csv", nil, "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="ebenezer_movimenti_\d{4}-\d{2}-\d{2}\.csv"$`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), encoding.BOM))

	f.movements.EXPECT().ListMovements(gomock.Any(), f.user.ID).Return(stored(f.user.ID), nil)

	rec = f.do(t, http.MethodGet, "/api/v1/export/pdf", nil, "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = f.do(t, http.MethodGet, "/api/v1/export/xlsx", nil, "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportRoute(t *testing.T) {
	f := newFixture(t)

	csv := `"Data";"Tipo";"Settore";"Pagamento";"Descrizione";"Categoria";"Importo"` + "\n" +
		`"01/02/2026";"Entrata";"Bar";"Contanti";"Incasso";"Donazioni";"€10.00"` + "\n"

	upload := func(t *testing.T, content string) *httptest.ResponseRecorder {
		t.Helper()

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)

		fw, err := mw.CreateFormFile("file", "movimenti.csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		return f.do(t, http.MethodPost, "/api/v1/import", body.Bytes(), mw.FormDataContentType(), true)
	}

	f.movements.EXPECT().InsertMovements(gomock.Any(), gomock.Len(1)).Return(nil)

	rec := upload(t, csv)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"imported":1`)

	rec = upload(t, "just;some;text\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "intestazione"))
}
