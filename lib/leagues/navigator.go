package leagues

import (
	"errors"
	"fmt"
)

var (
	ErrNoLeagues       = errors.New("no leagues to browse")
	ErrIndexOutOfRange = errors.New("league index out of range")
)

// Navigator is a cursor over a fixed, non-empty list of leagues that wraps
// around at both ends.
type Navigator struct {
	leagues []League
	index   int
}

func NewNavigator(leagues []League) (*Navigator, error) {
	if len(leagues) == 0 {
		return nil, ErrNoLeagues
	}
	copied := make([]League, len(leagues))
	copy(copied, leagues)
	return &Navigator{leagues: copied}, nil
}

func (n *Navigator) Len() int {
	return len(n.leagues)
}

func (n *Navigator) Index() int {
	return n.index
}

func (n *Navigator) Current() League {
	return n.leagues[n.index]
}

func (n *Navigator) Leagues() []League {
	out := make([]League, len(n.leagues))
	copy(out, n.leagues)
	return out
}

// Next moves forward, from the last league back to the first.
func (n *Navigator) Next() League {
	if n.index == len(n.leagues)-1 {
		n.index = 0
	} else {
		n.index++
	}
	return n.Current()
}

// Prev moves backward, from the first league to the last.
func (n *Navigator) Prev() League {
	if n.index == 0 {
		n.index = len(n.leagues) - 1
	} else {
		n.index--
	}
	return n.Current()
}

func (n *Navigator) Seek(index int) (League, error) {
	if index < 0 || index >= len(n.leagues) {
		return League{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(n.leagues))
	}
	n.index = index
	return n.Current(), nil
}
