package sink

// outboundMessage is the self-describing wire shape pushed to every
// connected session. Field names and nesting follow spec.md §6
// exactly; msgpack's map encoding gives the "self-describing binary
// map" framing without a hand-rolled TLV codec.
type outboundMessage struct {
	Cameras  map[string][]string `msgpack:"cameras"`
	Current  *selection          `msgpack:"current"`
	Image    []byte              `msgpack:"image"`
	Graphics []wireGraphic       `msgpack:"graphics"`
}

type selection struct {
	Camera string `msgpack:"camera"`
	Image  string `msgpack:"image"`
}

// wireGraphic flattens frame.VectorGraphic into the tagged-union shape
// §6 specifies: one of point/line/rectangle/text, each carrying only
// the fields relevant to its kind.
type wireGraphic struct {
	Type        string   `msgpack:"type"`
	Color       [3]uint8 `msgpack:"color"`
	Point       *[2]float64 `msgpack:"point,omitempty"`
	Start       *[2]float64 `msgpack:"start,omitempty"`
	End         *[2]float64 `msgpack:"end,omitempty"`
	TopLeft     *[2]float64 `msgpack:"topLeft,omitempty"`
	BottomRight *[2]float64 `msgpack:"bottomRight,omitempty"`
	Text        string      `msgpack:"text,omitempty"`
}

// inboundMessage is the control message a peer sends to change the
// sink's current (camera, image) selection.
type inboundMessage struct {
	Camera string `msgpack:"camera"`
	Image  string `msgpack:"image"`
}
