package manychat

// Dynamic-block response format for ManyChat external request blocks.
// Reference: https://manychat.github.io/dynamic_block_docs/

const Version = "v2"

type Envelope struct {
	Version string  `json:"version"`
	Content Content `json:"content"`
}

type Content struct {
	Messages []Message `json:"messages"`
}

type Message struct {
	Type    string   `json:"type"`
	Text    string   `json:"text"`
	Buttons []Button `json:"buttons,omitempty"`
}

type Button struct {
	Type    string         `json:"type"`
	Caption string         `json:"caption"`
	URL     string         `json:"url,omitempty"`
	Method  string         `json:"method,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// TextEnvelope wraps a single text message.
func TextEnvelope(text string) Envelope {
	return Envelope{
		Version: Version,
		Content: Content{Messages: []Message{{Type: "text", Text: text}}},
	}
}

// ButtonsEnvelope wraps a text message carrying selectable buttons.
func ButtonsEnvelope(text string, buttons []Button) Envelope {
	return Envelope{
		Version: Version,
		Content: Content{Messages: []Message{{Type: "text", Text: text, Buttons: buttons}}},
	}
}

// CallbackButton builds a button that posts its payload back to the given
// adapter endpoint when tapped.
func CallbackButton(caption, url string, payload map[string]any) Button {
	return Button{
		Type:    "dynamic_block_callback",
		Caption: caption,
		URL:     url,
		Method:  "post",
		Payload: payload,
	}
}
