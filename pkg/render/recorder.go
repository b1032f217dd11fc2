package render

import "log/slog"

// Operation is one recorded draw call.
type Operation struct {
	Name string
	Args map[string]any
}

// Recorder is a headless Renderer that keeps a history of draw calls.
type Recorder struct {
	log           *slog.Logger
	logOperations bool
	history       []Operation
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithRecorderLogger sets the logger used when operation logging is on.
func WithRecorderLogger(log *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.log = log
	}
}

// WithLogOperations logs every draw call at debug level.
func WithLogOperations(enabled bool) RecorderOption {
	return func(r *Recorder) {
		r.logOperations = enabled
	}
}

// NewRecorder creates a headless renderer.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) record(name string, args map[string]any) {
	r.history = append(r.history, Operation{Name: name, Args: args})
	if r.logOperations {
		r.log.Debug("draw", "op", name, "args", args)
	}
}

// Clear implements Renderer. It starts a new frame, so History only ever
// holds the calls since the last clear.
func (r *Recorder) Clear(colour uint32) {
	r.history = nil
	r.record("Clear", map[string]any{"colour": colour})
}

// DrawSprite implements Renderer.
func (r *Recorder) DrawSprite(sprite int32, frame int, x, y, xscale, yscale, angle float64, blend uint32, alpha float64) {
	r.record("DrawSprite", map[string]any{
		"sprite": sprite, "frame": frame, "x": x, "y": y,
		"xscale": xscale, "yscale": yscale, "angle": angle,
		"blend": blend, "alpha": alpha,
	})
}

// DrawRectangle implements Renderer.
func (r *Recorder) DrawRectangle(x1, y1, x2, y2 float64, colour uint32, alpha float64, outline bool) {
	r.record("DrawRectangle", map[string]any{
		"x1": x1, "y1": y1, "x2": x2, "y2": y2,
		"colour": colour, "alpha": alpha, "outline": outline,
	})
}

// DrawText implements Renderer.
func (r *Recorder) DrawText(x, y float64, text string, colour uint32, alpha float64) {
	r.record("DrawText", map[string]any{
		"x": x, "y": y, "text": text, "colour": colour, "alpha": alpha,
	})
}

// History returns the recorded operations.
func (r *Recorder) History() []Operation { return r.history }

// Reset drops the recorded history.
func (r *Recorder) Reset() { r.history = nil }
