package site

import (
	"github.com/gorilla/sessions"
)

// CookieStorage keeps session values in a gorilla session. The caller
// saves the session once the request is done with it.
type CookieStorage struct {
	Session *sessions.Session
}

func (c CookieStorage) Get(key string) (string, bool, error) {
	v, ok := c.Session.Values[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

func (c CookieStorage) Set(key, value string) error {
	c.Session.Values[key] = value
	return nil
}

func (c CookieStorage) Delete(keys ...string) error {
	for _, k := range keys {
		delete(c.Session.Values, k)
	}
	return nil
}
