package rest

import (
	"bytes"
	"encoding/json"
	"strings"

	"memoboard/internal/gateway/domain/normalize"
)

// Envelope - разобранный ответ backend.
// Ответ считается конвертом, если это объект с булевым полем success.
// В остальных случаях Content содержит весь ответ как есть.
type Envelope struct {
	Success *bool
	Content any
	Message string
	// Object - ответ целиком, если это JSON-объект.
	Object normalize.Object
}

// DecodeJSON разбирает тело с сохранением точности чисел. Пустое тело дает nil.
func DecodeJSON(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeEnvelope разбирает тело в конверт, допуская «голые» значения.
func DecodeEnvelope(body []byte) (Envelope, error) {
	v, err := DecodeJSON(body)
	if err != nil {
		return Envelope{}, err
	}
	return envelopeOf(v), nil
}

func envelopeOf(v any) Envelope {
	obj, ok := normalize.AsObject(v)
	if !ok {
		return Envelope{Content: v}
	}

	env := Envelope{Content: v, Object: obj, Message: messageOf(obj)}
	if success, ok := obj["success"].(bool); ok {
		env.Success = &success
		env.Content = obj["content"]
	}
	return env
}

func messageOf(obj normalize.Object) string {
	for _, k := range []string{"message", "error", "msg"} {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Negative сообщает, что backend явно вернул success:false.
func (e Envelope) Negative() bool {
	return e.Success != nil && !*e.Success
}

// Items извлекает массив данных: content конверта, голый массив
// или поле content объекта-страницы без success.
func (e Envelope) Items() ([]any, bool) {
	if items, ok := normalize.AsArray(e.Content); ok {
		return items, true
	}
	if e.Success == nil && e.Object != nil {
		if items, ok := normalize.AsArray(e.Object["content"]); ok {
			return items, true
		}
	}
	return nil, false
}

// Item извлекает одиночный объект из конверта или голого ответа.
func (e Envelope) Item() (normalize.Object, bool) {
	return normalize.AsObject(e.Content)
}
