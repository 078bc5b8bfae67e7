package sink

import (
	"bytes"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"framepipe/frame"
	"framepipe/imagebuf"
	"framepipe/stage"
)

// Sink is the terminal Ordered stage: it builds a catalog of every
// camera and image in the frame, selects one (camera, image) to encode,
// and pushes the encoded message to the embedded Hub for broadcast. The
// current selection is shared mutable state protected by one mutex,
// mirroring the teacher's habit of one small lock per piece of shared
// state (mysync.TASLock, scheduler.syncContext) rather than a monitor
// object.
type Sink struct {
	stage.Base

	hub    *Hub
	logger *zap.Logger

	mu        sync.Mutex
	selection selection
	hasSel    bool
}

// New returns a Sink stage backed by hub. name is the stage's
// declared name for diagnostics.
func New(name string, hub *Hub, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sink{
		Base:   stage.Base{StageName: name, StagePolicy: stage.Ordered},
		hub:    hub,
		logger: logger,
	}
	hub.SetMessageHandler(s.handleControl)
	return s
}

// handleControl decodes an inbound {camera, image} control message and
// atomically replaces the current selection.
func (s *Sink) handleControl(sessionID string, payload []byte) {
	var in inboundMessage
	if err := msgpack.Unmarshal(payload, &in); err != nil {
		s.logger.Warn("sink: malformed control message", zap.String("session", sessionID), zap.Error(err))
		return
	}
	s.mu.Lock()
	s.selection = selection{Camera: in.Camera, Image: in.Image}
	s.hasSel = true
	s.mu.Unlock()
}

// Process implements stage.Stage.
func (s *Sink) Process(ctx *frame.Context) {
	// Build the catalog and pick the selected (camera, image); default
	// to the first camera/image discovered when no selection has been
	// made yet.
	catalog := make(map[string][]string)
	var chosenCam, chosenImage string
	haveDefault := false

	for _, cam := range ctx.Cameras() {
		var imageNames []string
		cam.Sub.ForEachImage(func(name string, _ *imagebuf.Buffer) {
			imageNames = append(imageNames, name)
		})
		catalog[cam.Name] = imageNames
		if !haveDefault && len(imageNames) > 0 {
			chosenCam, chosenImage = cam.Name, imageNames[0]
			haveDefault = true
		}
	}

	s.mu.Lock()
	sel, hasSel := s.selection, s.hasSel
	s.mu.Unlock()
	if hasSel {
		chosenCam, chosenImage = sel.Camera, sel.Image
	}

	out := outboundMessage{Cameras: catalog}
	if chosenCam != "" && chosenImage != "" {
		if cam := findCamera(ctx, chosenCam); cam != nil {
			buf := cam.Sub.Image(chosenImage)
			var encoded bytes.Buffer
			if err := buf.Save(&encoded); err == nil {
				out.Current = &selection{Camera: chosenCam, Image: chosenImage}
				out.Image = encoded.Bytes()
			}
			if graphics, err := cam.Sub.Graphics(chosenImage); err == nil {
				out.Graphics = toWireGraphics(graphics)
			}
		}
	}

	payload, err := msgpack.Marshal(&out)
	if err != nil {
		s.logger.Error("sink: encode failed", zap.Error(err))
		return
	}
	s.hub.Write(payload)
}

func findCamera(ctx *frame.Context, name string) *frame.Camera {
	for _, cam := range ctx.Cameras() {
		if cam.Name == name {
			return cam
		}
	}
	return nil
}

func toWireGraphics(gs []frame.VectorGraphic) []wireGraphic {
	wire := make([]wireGraphic, 0, len(gs))
	for _, g := range gs {
		w := wireGraphic{Color: [3]uint8{g.Color.R, g.Color.G, g.Color.B}}
		switch g.Kind {
		case frame.KindPoint:
			w.Type = "point"
			p := [2]float64{g.Point.X, g.Point.Y}
			w.Point = &p
		case frame.KindLine:
			w.Type = "line"
			start := [2]float64{g.Start.X, g.Start.Y}
			end := [2]float64{g.End.X, g.End.Y}
			w.Start, w.End = &start, &end
		case frame.KindRectangle:
			w.Type = "rectangle"
			tl := [2]float64{g.TopLeft.X, g.TopLeft.Y}
			br := [2]float64{g.BottomRight.X, g.BottomRight.Y}
			w.TopLeft, w.BottomRight = &tl, &br
		case frame.KindText:
			w.Type = "text"
			p := [2]float64{g.TextPoint.X, g.TextPoint.Y}
			w.Point = &p
			w.Text = g.Text
		}
		wire = append(wire, w)
	}
	return wire
}
