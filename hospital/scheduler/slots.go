// hospital/scheduler/slots.go
package scheduler

import (
	"context"
	"time"

	"hospital/hospital/sources/psql/dao"
	"hospital/hospital/utils/logging"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// slotLayouts are the date-time shapes the booking UI produces. Slots without
// an offset are read in the sweeper's configured location.
var slotLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
}

// ParseSlot reports the instant a slot names, if it names one. Zone-less
// slots are wall-clock times in loc.
func ParseSlot(slot string, loc *time.Location) (time.Time, bool) {
	for _, layout := range slotLayouts {
		if t, err := time.ParseInLocation(layout, slot, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SlotSweeper drops availability that already lies in the past.
type SlotSweeper struct {
	cron    *cron.Cron
	slotDAO *dao.SlotDAO
	loc     *time.Location
	now     func() time.Time
}

// NewSlotSweeper reads zone-less slots in loc. A nil loc means UTC.
func NewSlotSweeper(slotDAO *dao.SlotDAO, loc *time.Location) *SlotSweeper {
	if loc == nil {
		loc = time.UTC
	}
	return &SlotSweeper{
		cron:    cron.New(cron.WithLocation(loc)),
		slotDAO: slotDAO,
		loc:     loc,
		now:     time.Now,
	}
}

// SweepPastSlots deletes every slot that parses to a time before now.
// Slots that do not parse are left alone.
func (s *SlotSweeper) SweepPastSlots(ctx context.Context, now time.Time) (int64, error) {
	defer logging.LogDuration(ctx, "SweepPastSlots")()
	slots, err := s.slotDAO.ListAllSlots(ctx)
	if err != nil {
		return 0, err
	}
	var stale []uint
	for _, slot := range slots {
		if at, ok := ParseSlot(slot.Slot, s.loc); ok && at.Before(now) {
			stale = append(stale, slot.ID)
		}
	}
	return s.slotDAO.DeleteSlotsByID(ctx, stale)
}

func (s *SlotSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	n, err := s.SweepPastSlots(ctx, s.now())
	if err != nil {
		logging.ErrorLogger.Error("slot sweep failed", zap.Error(err))
		return
	}
	logging.AppLogger.Info("slot sweep done", zap.Int64("removed", n))
}

// Start registers the sweep on schedule (a cron spec or descriptor such as
// "@hourly") and starts the cron loop.
func (s *SlotSweeper) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return err
	}
	s.cron.Start()
	logging.AppLogger.Info("slot sweeper started",
		zap.String("schedule", schedule),
		zap.String("location", s.loc.String()),
	)
	return nil
}

// Stop waits for a running sweep to finish.
func (s *SlotSweeper) Stop() {
	<-s.cron.Stop().Done()
	logging.AppLogger.Info("slot sweeper stopped")
}
