package catalog

import (
	"encoding/json"

	"github.com/ryanphanna/Venture/pkg/board"
)

// Item returns the exhibit as board content with the exhibit as its payload.
func (e Exhibit) Item() board.ContentItem {
	return board.ContentItem{ID: e.ID, Kind: board.KindExhibit, Payload: payload(e)}
}

// Item returns the benefit as board content.
func (r Reciprocal) Item() board.ContentItem {
	return board.ContentItem{ID: r.ID, Kind: board.KindReciprocal, Payload: payload(r)}
}

// Item returns the tip as board content.
func (t Tip) Item() board.ContentItem {
	return board.ContentItem{ID: t.ID, Kind: board.KindTip, Payload: payload(t)}
}

// ExhibitItems converts exhibits to board content, keeping their order.
func ExhibitItems(exs []Exhibit) []board.ContentItem {
	out := make([]board.ContentItem, len(exs))
	for i, ex := range exs {
		out[i] = ex.Item()
	}
	return out
}

// ReciprocalItems converts benefits to board content, keeping their order.
func ReciprocalItems(rbs []Reciprocal) []board.ContentItem {
	out := make([]board.ContentItem, len(rbs))
	for i, rb := range rbs {
		out[i] = rb.Item()
	}
	return out
}

// payload encodes catalog values, which are plain data and always encode.
func payload(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic("catalog: encode payload: " + err.Error())
	}
	return data
}
