package simulation

import (
	"github.com/sarchlab/lendsim/datarecording"
	"github.com/sarchlab/lendsim/sim"
)

// RecordTableName is the table that a RecordingHook writes into.
const RecordTableName = "records"

// A RecordingHook writes the record of every tick into a DataRecorder. It
// flushes the recorder when the simulation ends.
type RecordingHook struct {
	recorder datarecording.DataRecorder
}

// NewRecordingHook creates the record table in the recorder and returns a hook
// that fills it.
func NewRecordingHook(recorder datarecording.DataRecorder) *RecordingHook {
	recorder.CreateTable(RecordTableName, RecordEntry{})

	return &RecordingHook{recorder: recorder}
}

// Func writes the record of a finished tick.
func (h *RecordingHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosTickEnd {
		return
	}

	record, ok := ctx.Item.(Record)
	if !ok {
		return
	}

	h.recorder.InsertData(RecordTableName, record.Entry())
}

// Handle flushes the recorder at the end of the simulation.
func (h *RecordingHook) Handle(_ sim.VTimeInYear) {
	h.recorder.Flush()
}

// AttachRecorder makes the simulation write its records into the recorder.
func (s *Simulation) AttachRecorder(
	recorder datarecording.DataRecorder,
) *RecordingHook {
	h := NewRecordingHook(recorder)
	s.AcceptHook(h)
	s.engine.RegisterSimulationEndHandler(h)

	return h
}
