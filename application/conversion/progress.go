package conversion

import "video2audio/domain/audio"

// Progress receives batch lifecycle events
type Progress interface {
	Start(total int)
	Advance(result audio.BatchResult)
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(int) {}
func (noopProgress) Advance(audio.BatchResult) {}
func (noopProgress) Finish() {}
