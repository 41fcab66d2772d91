package main

import (
	"context"
	"fmt"
	"io"

	"github.com/teslashibe/go-atlas/internal/config"
	"github.com/teslashibe/go-atlas/internal/journal"
	"github.com/teslashibe/go-atlas/internal/log"
	"github.com/teslashibe/go-atlas/internal/script"
	"github.com/teslashibe/go-atlas/pkg/protocol"
	"github.com/teslashibe/go-atlas/pkg/report"
	"github.com/teslashibe/go-atlas/pkg/sensors"
	"github.com/teslashibe/go-atlas/pkg/session"
	"github.com/teslashibe/go-atlas/pkg/web"
)

// sourceScript tags outcomes applied from ATLAS_SCRIPT.
const sourceScript = "script"

// run wires the session to its optional journal, script and server.
func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	sess := session.New(cfg.Name, sensors.NewSeeded(cfg.Seed))
	log.Info("session started", "robot", cfg.Name, "seed", cfg.Seed)

	srvCfg := web.DefaultConfig()
	srvCfg.Addr = cfg.Addr()

	if cfg.Journal != "" {
		store := journal.NewStore(cfg.Journal)
		defer store.Close()
		sess.OnOutcome(func(o protocol.OutcomeData) {
			if err := store.Record(ctx, o); err != nil {
				log.Warn("journal write failed", "id", o.ID, "err", err)
			}
		})
		srvCfg.Journal = store
	}

	if cfg.Script != "" {
		s, err := script.Load(cfg.Script)
		if err != nil {
			return fmt.Errorf("loading script: %w", err)
		}
		if err := runScript(out, sess, s); err != nil {
			return err
		}
	}

	if cfg.Port == "" {
		return nil
	}

	return web.NewServer(srvCfg, sess).Run(ctx)
}

// runScript prints the analysis of a fresh bundle, then applies each command.
func runScript(out io.Writer, sess *session.Session, s *script.Script) error {
	log.Info("running script", "script", s.Name, "commands", len(s.Commands))

	p := report.New(out)
	p.Step(1, "SENSOR DATA ACQUISITION")
	sensed := sess.Sense()
	p.Sensors(sensed.Bundle)
	p.Blank()
	p.Step(2, "BRAIN ANALYSIS")
	p.Analysis(sensed.Analysis)
	p.Blank()
	p.Step(3, "COMMAND PROCESSING")
	for _, cmd := range s.Commands {
		o := sess.ApplyFrom(sourceScript, cmd)
		p.Outcome(cmd, o.Result)
	}
	p.Blank()
	p.Step(4, "FINAL ROBOT STATE")
	p.Final(sess.Name(), sess.State())

	if err := p.Err(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
