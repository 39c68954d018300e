package leagues

import (
	"fmt"
	"strconv"
	"strings"

	"tennisleagues/lib/textutil"

	"github.com/antzucaro/matchr"
)

// names scoring below this are not considered a match
const minNameSimilarity = 0.8

// Find returns the index of the league referred to by query: an exact
// league id, an exact (case-insensitive) name, or failing those the most
// similar name by Jaro-Winkler distance.
func Find(leagues []League, query string) (int, error) {
	query = strings.TrimSpace(query)
	if len(leagues) == 0 {
		return 0, ErrNoLeagues
	}

	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		for i, l := range leagues {
			if l.ID == id {
				return i, nil
			}
		}
	}

	lowered := textutil.Fold(query)
	for i, l := range leagues {
		if textutil.Fold(l.Name) == lowered {
			return i, nil
		}
	}

	best := -1
	bestSimilarity := 0.0
	for i, l := range leagues {
		similarity := matchr.JaroWinkler(lowered, textutil.Fold(l.Name), false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = i
		}
	}
	if best < 0 || bestSimilarity < minNameSimilarity {
		return 0, fmt.Errorf("no league matches %q", query)
	}
	return best, nil
}
