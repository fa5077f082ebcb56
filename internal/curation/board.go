// Package curation lets the user pick and order the projects a résumé features.
package curation

import (
	"fmt"

	"github.com/jonathan/github-resume/internal/types"
)

// List names one side of the board.
type List string

const (
	Available List = "available"
	Selected  List = "selected"
)

// Board holds the candidate projects split into available and selected.
// The selected list is what the résumé features, in display order.
type Board struct {
	Available []types.Repo
	Selected  []types.Repo
	limit     int
}

// NewBoard starts with every candidate available and nothing selected.
func NewBoard(candidates []types.Repo) *Board {
	return &Board{
		Available: append([]types.Repo{}, candidates...),
		Selected:  []types.Repo{},
		limit:     types.MaxFeaturedRepos,
	}
}

// Move takes the project at fromIndex in one list and inserts it at toIndex
// in another (or the same) list. toIndex is clamped to the list length.
func (b *Board) Move(from List, fromIndex int, to List, toIndex int) error {
	source, err := b.list(from)
	if err != nil {
		return err
	}
	if _, err := b.list(to); err != nil {
		return err
	}
	if fromIndex < 0 || fromIndex >= len(*source) {
		return &MoveError{List: from, Index: fromIndex, Message: "index out of range"}
	}
	if to == Selected && from != Selected && len(b.Selected) >= b.limit {
		return &MoveError{List: to, Index: toIndex, Message: fmt.Sprintf("at most %d projects can be selected", b.limit)}
	}

	moved := (*source)[fromIndex]
	*source = append((*source)[:fromIndex:fromIndex], (*source)[fromIndex+1:]...)

	dest, _ := b.list(to)
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(*dest) {
		toIndex = len(*dest)
	}
	*dest = append((*dest)[:toIndex:toIndex], append([]types.Repo{moved}, (*dest)[toIndex:]...)...)
	return nil
}

// Edit replaces the project called name in both lists.
func (b *Board) Edit(name string, repo types.Repo) error {
	found := false
	for _, list := range []*[]types.Repo{&b.Available, &b.Selected} {
		for i := range *list {
			if (*list)[i].Name == name {
				(*list)[i] = repo
				found = true
			}
		}
	}
	if !found {
		return fmt.Errorf("project not found: %s", name)
	}
	return nil
}

// Apply returns a copy of data featuring the selected projects.
// Data without GitHub enrichment is returned unchanged.
func (b *Board) Apply(data *types.ResumeData) *types.ResumeData {
	out := data.Clone()
	if out == nil || out.GithubData == nil {
		return out
	}
	out.GithubData.Repos = append([]types.Repo{}, b.Selected...)
	return out
}

func (b *Board) list(name List) (*[]types.Repo, error) {
	switch name {
	case Available:
		return &b.Available, nil
	case Selected:
		return &b.Selected, nil
	default:
		return nil, fmt.Errorf("unknown list: %s", name)
	}
}

// SelectByName builds a board whose selection is the named projects in the
// given order. Every name must be a candidate.
func SelectByName(candidates []types.Repo, names []string) (*Board, error) {
	board := NewBoard(candidates)
	for _, name := range names {
		index := -1
		for i, repo := range board.Available {
			if repo.Name == name {
				index = i
				break
			}
		}
		if index < 0 {
			return nil, fmt.Errorf("project not found: %s", name)
		}
		if err := board.Move(Available, index, Selected, len(board.Selected)); err != nil {
			return nil, err
		}
	}
	return board, nil
}

// MoveError represents a drag that the board refused
type MoveError struct {
	List    List
	Index   int
	Message string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("invalid move at %s[%d]: %s", e.List, e.Index, e.Message)
}
