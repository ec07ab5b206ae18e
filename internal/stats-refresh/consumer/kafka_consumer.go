package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	lcache "github.com/radieske/caderneta/internal/ledger-service/cache"
	skafka "github.com/radieske/caderneta/internal/shared/kafka"
	"github.com/radieske/caderneta/internal/stats-refresh/repo"
	"github.com/radieske/caderneta/pkg/contracts/events"
	"github.com/radieske/caderneta/pkg/ledger"
)

// Refresher consome eventos de mudança da caderneta e reaquece o resumo
// cacheado do perfil, para a leitura seguinte já encontrar o painel pronto.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa.
type Refresher struct {
	Log    *zap.Logger
	Reader *kafka.Reader
	Repo   *repo.ReadRepo
	Cache  *lcache.Cache
	TTL    time.Duration
	DLQ    *kafka.Writer    // opcional; nil desabilita o dead-letter
	Now    func() time.Time // injetável nos testes; default time.Now

	OnConsumed  func()       // métricas (counter++)
	OnRefreshed func()       // métricas
	OnError     func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e recálculo
func (p *Refresher) Run(ctx context.Context) error {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed()
		}

		var ev events.LedgerChanged
		if err := json.Unmarshal(m.Value, &ev); err != nil || ev.ProfileID == "" {
			p.Log.Warn("invalid message", zap.Error(err))
			if p.OnError != nil {
				p.OnError("decode")
			}
			continue
		}

		if err := p.refreshOne(ctx, ev, now()); err != nil {
			// Retry simples antes de desistir e mandar pro DLQ
			const retries = 3
			for i := 0; i < retries; i++ {
				time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
				if err = p.refreshOne(ctx, ev, now()); err == nil {
					break
				}
			}
			if err != nil {
				p.Log.Error("refresh failed", zap.String("profile", ev.ProfileID), zap.Error(err))
				if p.OnError != nil {
					p.OnError("refresh")
				}
				if p.DLQ != nil {
					_ = skafka.WriteJSON(ctx, p.DLQ, ev.ProfileID, m.Value)
				}
				continue
			}
		}

		if p.OnRefreshed != nil {
			p.OnRefreshed()
		}
	}
}

// refreshOne recalcula e reaquece o resumo de um único perfil
func (p *Refresher) refreshOne(ctx context.Context, ev events.LedgerChanged, now time.Time) error {
	bets, flows, base, err := p.Repo.LoadProfile(ctx, ev.ProfileID)
	if err != nil {
		return err
	}
	dash := ledger.BuildDashboard(bets, flows, base, now)
	return p.Cache.SetSummary(ctx, ev.ProfileID, dash, p.TTL)
}
