// Package monitor logs engine status from the bus, plus a periodic heartbeat.
package monitor

import (
	"context"
	"strconv"
	"time"

	"funcgen-go/bus"
	"funcgen-go/services/config"
	"funcgen-go/types"
	"funcgen-go/x/logx"
)

const defaultHeartbeat = time.Second

type Service struct {
	log      *logx.Logger
	interval time.Duration

	// last seen status, reported on every heartbeat
	mode  string
	stats types.StatsStatus
}

func New(log *logx.Logger, interval time.Duration) *Service {
	if log == nil {
		log = logx.Nop()
	}
	if interval <= 0 {
		interval = defaultHeartbeat
	}
	return &Service{log: log, interval: interval}
}

// Run blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context, conn *bus.Connection) {
	statusSub := conn.Subscribe(bus.T(types.TopicFuncgen, "#"))
	defer conn.Unsubscribe(statusSub)
	cfgSub := conn.Subscribe(config.Topic())
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	// loop until context is cancelled, respond to tick, status and config changes
	for {
		select {
		case <-ctx.Done():
			s.log.Info("monitor stopping")
			return
		case <-tick.C:
			s.log.Info("heartbeat", "mode", s.mode, "emitted", s.stats.Emitted, "late", s.stats.Late)
		case msg := <-statusSub.Channel():
			s.handleStatus(msg)
		case msg := <-cfgSub.Channel():
			set, ok := msg.Payload.(config.Settings)
			if !ok {
				continue
			}
			s.log.Info("config", "board", set.Board, "vref", set.VRef, "fmax", set.MaxFrequency)
			if set.Heartbeat > 0 && set.Heartbeat != s.interval {
				s.interval = set.Heartbeat
				tick.Reset(s.interval)
				s.log.Info("heartbeat interval set", "interval", s.interval)
			}
		}
	}
}

// Start the monitor service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.Run(ctx, conn)
	return nil
}

func (s *Service) handleStatus(msg *bus.Message) {
	switch st := msg.Payload.(type) {
	case types.ModeStatus:
		s.mode = st.Mode
		s.log.Info("mode", "mode", st.Mode, "field", st.Field)
	case types.TableStatus:
		s.log.Info("table",
			"kind", st.Kind,
			"freq", st.Frequency,
			"amp", st.Amplitude,
			"offset", st.Offset,
			"samples", st.Samples,
			"interval_us", st.Interval,
			"sum", hex64(st.Checksum))
	case types.StatsStatus:
		if st.Late > s.stats.Late && st.Emitted >= s.stats.Emitted {
			s.log.Warn("late samples", "late", st.Late-s.stats.Late)
		}
		s.stats = st
		s.log.Debug("stats", "emitted", st.Emitted, "late", st.Late)
	default:
		s.log.Debug("unknown status", "topic", msg.Topic)
	}
}

func hex64(v uint64) string {
	b := make([]byte, 0, 18)
	b = append(b, "0x"...)
	return string(strconv.AppendUint(b, v, 16))
}
