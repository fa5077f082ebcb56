package curation

import (
	"testing"

	"github.com/jonathan/github-resume/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repos(names ...string) []types.Repo {
	out := make([]types.Repo, 0, len(names))
	for i, name := range names {
		out = append(out, types.Repo{Name: name, Stars: 100 - i, URL: "https://github.com/octocat/" + name})
	}
	return out
}

func names(list []types.Repo) []string {
	out := make([]string, 0, len(list))
	for _, repo := range list {
		out = append(out, repo.Name)
	}
	return out
}

func TestNewBoard(t *testing.T) {
	candidates := repos("a", "b")
	board := NewBoard(candidates)

	assert.Equal(t, []string{"a", "b"}, names(board.Available))
	assert.NotNil(t, board.Selected)
	assert.Empty(t, board.Selected)

	board.Available[0].Name = "changed"
	assert.Equal(t, "a", candidates[0].Name, "board should copy the candidates")
}

func TestMove(t *testing.T) {
	board := NewBoard(repos("a", "b", "c", "d"))

	require.NoError(t, board.Move(Available, 2, Selected, 0)) // c
	require.NoError(t, board.Move(Available, 0, Selected, 0)) // a before c
	require.NoError(t, board.Move(Available, 1, Selected, 99)) // d appended

	assert.Equal(t, []string{"a", "c", "d"}, names(board.Selected))
	assert.Equal(t, []string{"b"}, names(board.Available))

	// Reorder within the selection.
	require.NoError(t, board.Move(Selected, 2, Selected, 0))
	assert.Equal(t, []string{"d", "a", "c"}, names(board.Selected))

	// Drag back out.
	require.NoError(t, board.Move(Selected, 1, Available, 0))
	assert.Equal(t, []string{"d", "c"}, names(board.Selected))
	assert.Equal(t, []string{"a", "b"}, names(board.Available))
}

func TestMove_SelectionLimit(t *testing.T) {
	board := NewBoard(repos("a", "b", "c", "d", "e"))
	for i := 0; i < types.MaxFeaturedRepos; i++ {
		require.NoError(t, board.Move(Available, 0, Selected, i))
	}

	err := board.Move(Available, 0, Selected, 0)
	var moveErr *MoveError
	require.ErrorAs(t, err, &moveErr)
	assert.Contains(t, err.Error(), "at most 4 projects")
	assert.Equal(t, []string{"e"}, names(board.Available))

	// Reordering a full selection is still allowed.
	require.NoError(t, board.Move(Selected, 3, Selected, 0))
	assert.Equal(t, []string{"d", "a", "b", "c"}, names(board.Selected))
}

func TestMove_Errors(t *testing.T) {
	board := NewBoard(repos("a"))

	assert.Error(t, board.Move(Available, 1, Selected, 0))
	assert.Error(t, board.Move(Available, -1, Selected, 0))
	assert.Error(t, board.Move("trash", 0, Selected, 0))
	assert.Error(t, board.Move(Available, 0, "trash", 0))
	assert.Equal(t, []string{"a"}, names(board.Available))
}

func TestEdit(t *testing.T) {
	board := NewBoard(repos("a", "b"))
	require.NoError(t, board.Move(Available, 0, Selected, 0))

	edited := types.Repo{Name: "a", Description: "Rewritten by hand ✍️", Stars: 1, URL: "https://example.com/a", Language: "Go"}
	require.NoError(t, board.Edit("a", edited))
	assert.Equal(t, edited, board.Selected[0])

	assert.ErrorContains(t, board.Edit("missing", edited), "project not found")
}

func TestApply(t *testing.T) {
	data := &types.ResumeData{
		PersonalInfo: types.PersonalInfo{Name: "n", Title: "t", Email: "e"},
		GithubData: &types.GitHubData{
			AvatarURL: "https://avatars.example.com/o.png",
			Repos:     repos("a", "b", "c", "d"),
		},
	}
	board := NewBoard(repos("a", "b", "c", "d", "e"))
	require.NoError(t, board.Move(Available, 4, Selected, 0))
	require.NoError(t, board.Move(Available, 1, Selected, 1))

	curated := board.Apply(data)

	assert.Equal(t, []string{"e", "b"}, names(curated.GithubData.Repos))
	assert.Equal(t, "https://avatars.example.com/o.png", curated.GithubData.AvatarURL)
	assert.Equal(t, []string{"a", "b", "c", "d"}, names(data.GithubData.Repos), "input snapshot should not change")
}

func TestApply_WithoutGithubData(t *testing.T) {
	data := &types.ResumeData{PersonalInfo: types.PersonalInfo{Name: "n"}}
	board := NewBoard(repos("a"))
	require.NoError(t, board.Move(Available, 0, Selected, 0))

	assert.Nil(t, board.Apply(data).GithubData)
}

func TestSelectByName(t *testing.T) {
	board, err := SelectByName(repos("a", "b", "c"), []string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, names(board.Selected))
	assert.Equal(t, []string{"b"}, names(board.Available))

	_, err = SelectByName(repos("a"), []string{"zzz"})
	assert.ErrorContains(t, err, "project not found: zzz")

	_, err = SelectByName(repos("a", "b", "c", "d", "e"), []string{"a", "b", "c", "d", "e"})
	assert.ErrorContains(t, err, "at most 4")
}
