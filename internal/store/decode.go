package store

import "encoding/json"

func decodeInto(doc Document, out any) error {
	return json.Unmarshal(doc.Body, out)
}
