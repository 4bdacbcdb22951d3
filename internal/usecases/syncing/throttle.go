package syncing

import "time"

// Throttle é a janela mínima entre sincronizações de uma organização.
// O gate é suave: uma corrida apertada entre duas requisições resolve como
// uma executa, a outra vira no-op na rodada seguinte.
type Throttle struct {
	interval time.Duration
	now      func() time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{
		interval: interval,
		now:      time.Now,
	}
}

// WithClock injeta um relógio determinístico para testes
func (t *Throttle) WithClock(now func() time.Time) *Throttle {
	t.now = now
	return t
}

// Allow verifica se a organização pode sincronizar agora. Organização nunca
// sincronizada passa sempre.
func (t *Throttle) Allow(lastSyncedAt *time.Time) bool {
	if lastSyncedAt == nil {
		return true
	}
	return t.now().Sub(*lastSyncedAt) >= t.interval
}
