package service

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Autosaver periodically flushes dirty workspaces to the snapshot store.
type Autosaver struct {
	cron *cron.Cron
	svc  *WorkspaceService
}

// NewAutosaver schedules SaveDirty on a six-field cron spec, for example
// "0 */5 * * * *" for every five minutes.
func NewAutosaver(svc *WorkspaceService, schedule string) (*Autosaver, error) {
	c := cron.New(cron.WithSeconds())
	a := &Autosaver{cron: c, svc: svc}
	if _, err := c.AddFunc(schedule, a.run); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Autosaver) Start() {
	a.cron.Start()
	log.Printf("[autosave] started backend=%s", a.svc.Backend())
}

// Stop halts the schedule, waits for a running flush and performs a last one.
func (a *Autosaver) Stop() {
	<-a.cron.Stop().Done()
	a.run()
}

func (a *Autosaver) run() {
	if n := a.svc.SaveDirty(context.Background()); n > 0 {
		log.Printf("[autosave] saved=%d backend=%s", n, a.svc.Backend())
	}
}
