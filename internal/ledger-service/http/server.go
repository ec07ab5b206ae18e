package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/caderneta/internal/ledger-service/cache"
	"github.com/radieske/caderneta/internal/ledger-service/dto"
	"github.com/radieske/caderneta/internal/ledger-service/repo"
	"github.com/radieske/caderneta/internal/ledger-service/slip"
	"github.com/radieske/caderneta/pkg/contracts/events"
	"github.com/radieske/caderneta/pkg/ledger"
)

// Publisher emite eventos de mudança da caderneta.
type Publisher interface {
	PublishLedgerChanged(context.Context, events.LedgerChanged) error
}

// Server é a API pública da caderneta: CRUD espelhado no Postgres e os
// números derivados calculados pelo pkg/ledger a cada leitura.
type Server struct {
	log        *zap.Logger
	repo       *repo.Postgres
	cache      *cache.Cache
	publ       Publisher
	slipReader *slip.Client
	summaryTTL time.Duration
}

func NewServer(log *zap.Logger, r *repo.Postgres, c *cache.Cache, p Publisher, sr *slip.Client, summaryTTL time.Duration) *Server {
	return &Server{log: log, repo: r, cache: c, publ: p, slipReader: sr, summaryTTL: summaryTTL}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Route("/v1/profiles/{profileID}", func(r chi.Router) {
		r.Get("/bets", s.listBets)
		r.Put("/bets", s.saveBet)
		r.Delete("/bets/{betID}", s.deleteBet)

		r.Get("/cashflows", s.listCashflows)
		r.Put("/cashflows", s.saveCashflow)
		r.Delete("/cashflows/{flowID}", s.deleteCashflow)

		r.Get("/summary", s.getSummary)
		r.Get("/rankings", s.getRankings)

		r.Get("/bankroll", s.getBankroll)
		r.Put("/bankroll", s.setBankroll)

		r.Get("/extras/{kind}", s.getExtra)
		r.Put("/extras/{kind}", s.setExtra)

		r.Post("/slip-import", s.slipImport)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func profileID(r *http.Request) string {
	id := chi.URLParam(r, "profileID")
	if id == "" {
		id = "default"
	}
	return id
}

// notifica o worker e derruba o resumo cacheado; falha aqui não derruba a
// escrita que já foi confirmada no banco
func (s *Server) recordChanged(ctx context.Context, profile, kind, op, recordID string) {
	if err := s.cache.InvalidateSummary(ctx, profile); err != nil {
		s.log.Warn("cache invalidate", zap.Error(err))
	}
	err := s.publ.PublishLedgerChanged(ctx, events.LedgerChanged{
		ProfileID: profile,
		Kind:      kind,
		Op:        op,
		RecordID:  recordID,
	})
	if err != nil {
		s.log.Warn("publish ledger_changed", zap.Error(err))
	}
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	bets, err := s.repo.ListBets(r.Context(), profileID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if bets == nil {
		bets = []ledger.Bet{}
	}
	writeJSON(w, http.StatusOK, bets)
}

func (s *Server) saveBet(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Bet == nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	b := ledger.NormalizeBet(req.Bet)
	b.Date = ledger.FormatDateDisplay(b.Date)
	if b.Date == "" || b.Event == "" || b.Book == "" ||
		math.IsNaN(b.Odds) || math.IsInf(b.Odds, 0) ||
		math.IsNaN(b.Stake) || math.IsInf(b.Stake, 0) {
		writeError(w, http.StatusBadRequest, "invalid payload: date (DD/MM/YYYY), event, book, odds e stake são obrigatórios")
		return
	}
	if b.Odds < 1 || b.Stake < 0 {
		writeError(w, http.StatusBadRequest, "invalid payload: odds >= 1 e stake >= 0")
		return
	}

	profile := profileID(r)
	id, err := s.repo.UpsertBet(r.Context(), profile, b)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.recordChanged(r.Context(), profile, "bet", "saved", id)
	writeJSON(w, http.StatusOK, dto.SaveResponse{ID: id})
}

func (s *Server) deleteBet(w http.ResponseWriter, r *http.Request) {
	profile := profileID(r)
	betID := chi.URLParam(r, "betID")
	if err := s.repo.DeleteBet(r.Context(), profile, betID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.recordChanged(r.Context(), profile, "bet", "deleted", betID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCashflows(w http.ResponseWriter, r *http.Request) {
	flows, err := s.repo.ListCashMovements(r.Context(), profileID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if flows == nil {
		flows = []ledger.CashMovement{}
	}
	writeJSON(w, http.StatusOK, flows)
}

func (s *Server) saveCashflow(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveCashMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Movement == nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	f := ledger.NormalizeCashMovement(req.Movement)
	f.Date = ledger.FormatDateDisplay(f.Date)
	if f.Date == "" || (f.Type != ledger.FlowDeposit && f.Type != ledger.FlowWithdraw) ||
		math.IsNaN(f.Amount) || math.IsInf(f.Amount, 0) || f.Amount < 0 {
		writeError(w, http.StatusBadRequest, "invalid payload: date, type (deposit|withdraw) e amount >= 0")
		return
	}

	profile := profileID(r)
	id, err := s.repo.UpsertCashMovement(r.Context(), profile, f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.recordChanged(r.Context(), profile, "cashflow", "saved", id)
	writeJSON(w, http.StatusOK, dto.SaveResponse{ID: id})
}

func (s *Server) deleteCashflow(w http.ResponseWriter, r *http.Request) {
	profile := profileID(r)
	flowID := chi.URLParam(r, "flowID")
	if err := s.repo.DeleteCashMovement(r.Context(), profile, flowID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.recordChanged(r.Context(), profile, "cashflow", "deleted", flowID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	profile := profileID(r)

	var cached dto.SummaryResponse
	if ok, _ := s.cache.GetSummary(r.Context(), profile, &cached); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	bets, flows, base, err := s.loadProfile(r.Context(), profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := ledger.BuildDashboard(bets, flows, base, time.Now())
	if err := s.cache.SetSummary(r.Context(), profile, resp, s.summaryTTL); err != nil {
		s.log.Warn("cache set", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getRankings(w http.ResponseWriter, r *http.Request) {
	bets, err := s.repo.ListBets(r.Context(), profileID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	byBook := ledger.StatsByDimension(bets, ledger.ByBook)
	best, worst := ledger.BestAndWorstByProfit(byBook)
	writeJSON(w, http.StatusOK, dto.RankingsResponse{
		Overall:   ledger.Overall(bets),
		ByBook:    byBook,
		BySource:  ledger.StatsByDimension(bets, ledger.BySource),
		ByWeekday: ledger.StatsByDimension(bets, ledger.ByWeekday),
		BestBook:  best,
		WorstBook: worst,
		TopWins:   ledger.TopWins(bets, 5),
		TopLosses: ledger.TopLosses(bets, 5),
		Extremes:  ledger.Extremes(bets),
	})
}

func (s *Server) getBankroll(w http.ResponseWriter, r *http.Request) {
	profile := profileID(r)
	bets, flows, base, err := s.loadProfile(r.Context(), profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.BankrollResponse{
		Base:      base,
		Effective: ledger.EffectiveBankroll(base, bets, flows),
	})
}

// setBankroll é o único caminho de mutação da base: o valor digitado é
// resolvido de volta para a base via RebaseFromDisplayedValue, preservando
// base + lucro + fluxo == valor exibido. Valor ilegível limpa a base.
func (s *Server) setBankroll(w http.ResponseWriter, r *http.Request) {
	var req dto.SetBankrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	profile := profileID(r)
	bets, flows, _, err := s.loadProfile(r.Context(), profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var base *float64
	if entered, ok := ledger.ParseLocaleNumber(req.Value); ok {
		base = ledger.RebaseFromDisplayedValue(entered, bets, flows)
	}
	if err := s.repo.SetBankrollBase(r.Context(), profile, base); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.recordChanged(r.Context(), profile, "bankroll", "saved", "")
	writeJSON(w, http.StatusOK, dto.BankrollResponse{
		Base:      base,
		Effective: ledger.EffectiveBankroll(base, bets, flows),
	})
}

func (s *Server) getExtra(w http.ResponseWriter, r *http.Request) {
	kind := repo.ExtraKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "kind deve ser settings, goals ou notes")
		return
	}
	value, err := s.repo.GetExtra(r.Context(), profileID(r), kind)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.ExtraResponse{Kind: string(kind), Value: value})
}

func (s *Server) setExtra(w http.ResponseWriter, r *http.Request) {
	kind := repo.ExtraKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "kind deve ser settings, goals ou notes")
		return
	}
	var req dto.SetExtraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	profile := profileID(r)
	if err := s.repo.SetExtra(r.Context(), profile, kind, req.Value); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.recordChanged(r.Context(), profile, "extras", "saved", string(kind))
	writeJSON(w, http.StatusOK, dto.ExtraResponse{Kind: string(kind), Value: req.Value})
}

// slipImport encaminha o print do bilhete ao leitor externo e devolve a
// sugestão sem persistir nada: o usuário revisa no formulário antes de salvar.
func (s *Server) slipImport(w http.ResponseWriter, r *http.Request) {
	var req dto.SlipImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageBase64 == "" {
		writeError(w, http.StatusBadRequest, "imageBase64 required")
		return
	}

	suggestion, err := s.slipReader.Read(r.Context(), req.ImageBase64)
	if err != nil {
		if errors.Is(err, slip.ErrDisabled) {
			writeError(w, http.StatusNotImplemented, "slip reader not configured")
			return
		}
		s.log.Warn("slip reader", zap.Error(err))
		writeError(w, http.StatusBadGateway, "slip reader unavailable")
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

func (s *Server) loadProfile(ctx context.Context, profile string) ([]ledger.Bet, []ledger.CashMovement, *float64, error) {
	bets, err := s.repo.ListBets(ctx, profile)
	if err != nil {
		return nil, nil, nil, err
	}
	flows, err := s.repo.ListCashMovements(ctx, profile)
	if err != nil {
		return nil, nil, nil, err
	}
	base, err := s.repo.GetBankrollBase(ctx, profile)
	if err != nil {
		return nil, nil, nil, err
	}
	return bets, flows, base, nil
}
