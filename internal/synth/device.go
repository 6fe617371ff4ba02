package synth

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const deviceBufferLatency = 40 * time.Millisecond

// oto allows a single context per process.
var (
	otoCtx     *oto.Context
	otoRate    int
	otoOnce    sync.Once
	otoInitErr error
)

func initOto(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatFloat32LE,
			BufferSize:   deviceBufferLatency,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
			otoRate = sampleRate
		}
	})
	if otoInitErr != nil {
		return nil, otoInitErr
	}
	if otoRate != sampleRate {
		return nil, fmt.Errorf("audio device already open at %d Hz", otoRate)
	}
	return otoCtx, nil
}

// OpenDevice is an OpenFunc that streams to the system audio device. The
// returned player starts paused.
func OpenDevice(sampleRate int, src io.Reader) (Sink, error) {
	ctx, err := initOto(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("init audio device: %w", err)
	}
	p := ctx.NewPlayer(src)
	p.SetBufferSize(int(deviceBufferLatency.Seconds()*float64(sampleRate)) * bytesPerFrame)
	return p, nil
}
