package locale

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ValidateTranslations checks that every locale file carries the same
// set of message keys. Returns the sorted key set of the default locale.
func ValidateTranslations() ([]string, error) {
	keysByFile := make(map[string][]string, len(localeFiles))

	for _, f := range localeFiles {
		data, err := localizedata.ReadFile("locales/" + f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}

		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f, err)
		}

		keys := make([]string, 0, len(messages))
		for k := range messages {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		keysByFile[f] = keys
	}

	reference := keysByFile[localeFiles[0]]
	for _, f := range localeFiles[1:] {
		keys := keysByFile[f]
		if len(keys) != len(reference) {
			return nil, fmt.Errorf("%s has %d keys, %s has %d", localeFiles[0], len(reference), f, len(keys))
		}
		for i := range reference {
			if keys[i] != reference[i] {
				return nil, fmt.Errorf("key mismatch between %s and %s: %s vs %s", localeFiles[0], f, reference[i], keys[i])
			}
		}
	}

	return reference, nil
}
