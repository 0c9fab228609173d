package models

import (
	"encoding/json"
	"maps"
)

// Extra conserva i campi di un record incorporato che il backend non interpreta,
// così una lista riletta e risalvata non perde ciò che il frontend aveva inviato.
type Extra map[string]json.RawMessage

// splitExtra restituisce le chiavi dell'oggetto data non elencate in known; nil se non ce ne sono
func splitExtra(data []byte, known ...string) (Extra, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return Extra(all), nil
}

// mergeExtra aggiunge extra all'oggetto JSON base; i campi noti hanno la precedenza
func mergeExtra(base []byte, extra Extra) ([]byte, error) {
	if len(extra) == 0 {
		return base, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	merged := maps.Clone(map[string]json.RawMessage(extra))
	maps.Copy(merged, fields)
	return json.Marshal(merged)
}
