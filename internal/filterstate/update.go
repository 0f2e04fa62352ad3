package filterstate

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Update is a partial change of the listing query. A nil value removes the key.
type Update map[string]*string

// Value is a convenience for building an Update literal.
func Value(v string) *string {
	return &v
}

// Has reports whether the update touches key.
func (u Update) Has(key string) bool {
	_, ok := u[key]
	return ok
}

// Set merges update into current and returns the new query values.
//
// Keys set to nil, "" or "all" are removed so the field default applies on the
// next Parse. Unless the update itself carries currentPage, currentPage is removed:
// any filter change sends the shopper back to the first page. A change of
// categoryId also clears size and material unless the update sets them itself.
func Set(current url.Values, update Update) url.Values {
	values := clone(current)

	if update.Has(KeyCategoryID) && normalized(update[KeyCategoryID]) != current.Get(KeyCategoryID) {
		for _, key := range []string{KeySize, KeyMaterial} {
			if !update.Has(key) {
				values.Del(key)
			}
		}
	}

	for key, v := range update {
		if v == nil || *v == "" || *v == "all" {
			values.Del(key)
			continue
		}
		values.Set(key, *v)
	}

	if !update.Has(KeyCurrentPage) {
		values.Del(KeyCurrentPage)
	}
	return values
}

func normalized(v *string) string {
	if v == nil || *v == "all" {
		return ""
	}
	return *v
}

// SetCategoryID changes the category. Size and material are variant-scoped
// filters of the previous category, so they are cleared in the same update.
func SetCategoryID(current url.Values, categoryID string) url.Values {
	return Set(current, Update{
		KeyCategoryID: Value(categoryID),
		KeySize:       nil,
		KeyMaterial:   nil,
	})
}

// SetPage moves to page n. Pages below 2 drop the key (page 1 is the default).
func SetPage(current url.Values, n int) url.Values {
	if n <= 1 {
		return Set(current, Update{KeyCurrentPage: nil})
	}
	return Set(current, Update{KeyCurrentPage: Value(strconv.Itoa(n))})
}

// Reset removes every recognized filter key in one navigation.
// Unrecognized keys (tracking parameters and the like) are left alone.
func Reset(current url.Values) url.Values {
	values := clone(current)
	for _, key := range Keys {
		values.Del(key)
	}
	return values
}

// DecodeUpdate turns a decoded JSON object into an Update, stringifying values:
// null removes the key, numbers keep their shortest form, booleans become
// "true"/"false".
func DecodeUpdate(raw map[string]any) Update {
	update := make(Update, len(raw))
	for key, v := range raw {
		switch val := v.(type) {
		case nil:
			update[key] = nil
		case string:
			update[key] = Value(val)
		case float64:
			update[key] = Value(strconv.FormatFloat(val, 'f', -1, 64))
		case json.Number:
			update[key] = Value(val.String())
		case bool:
			update[key] = Value(strconv.FormatBool(val))
		default:
			update[key] = Value(fmt.Sprint(val))
		}
	}
	return update
}
