package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/github-resume/internal/cache"
	"github.com/jonathan/github-resume/internal/config"
	"github.com/jonathan/github-resume/internal/share"
	"github.com/jonathan/github-resume/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const octocatForm = `{
	"name": "The Octocat",
	"title": "Mascot",
	"email": "octocat@github.com",
	"fresher": true,
	"education": "Octo University\nForks 101",
	"skills": "Go, Rust,  , C++",
	"githubUsername": " octocat "
}`

const offlineForm = `{
	"name": "Jane Doe",
	"title": "Engineer",
	"email": "jane@example.com",
	"summary": "Builds things.",
	"experiences": [
		{"title": "Engineer", "company": "Acme", "location": "Remote", "startDate": "2020", "endDate": "Present",
		 "highlights": ["Shipped the thing", "   "]}
	],
	"education": "BSc Computer Science",
	"skills": "Go"
}`

func fakeGithub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/octocat":
			_, _ = w.Write([]byte(`{"login": "octocat", "avatar_url": "https://avatars.example.com/octocat.png", "bio": null, "location": null}`))
		case "/users/octocat/repos":
			_, _ = w.Write([]byte(`[
				{"name": "a", "stargazers_count": 1, "html_url": "https://github.com/octocat/a", "fork": false},
				{"name": "b", "stargazers_count": 50, "html_url": "https://github.com/octocat/b", "language": "Go", "fork": false},
				{"name": "c", "stargazers_count": 30, "html_url": "https://github.com/octocat/c", "fork": false},
				{"name": "d", "stargazers_count": 40, "html_url": "https://github.com/octocat/d", "fork": false},
				{"name": "e", "stargazers_count": 20, "html_url": "https://github.com/octocat/e", "fork": false},
				{"name": "forked", "stargazers_count": 999, "html_url": "https://github.com/octocat/forked", "fork": true}
			]`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testApp(t *testing.T, cfg config.Config) (*app, *bytes.Buffer) {
	t.Helper()
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = cache.BackendMemory
	}
	var out bytes.Buffer
	a, err := newApp(context.Background(), cfg, &out)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, &out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveConfig_Precedence(t *testing.T) {
	t.Setenv(config.EnvCacheDSN, "/env/cache.db")
	t.Setenv(config.EnvGithubToken, "env-token")

	configPath := writeFile(t, "config.json", `{
		"share_origin": "https://file.example.com",
		"cache_dsn": "/file/cache.db",
		"theme": "dark",
		"verbose": true
	}`)

	cfg, err := resolveConfig(config.Config{ShareOrigin: "https://flag.example.com"}, configPath)
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example.com", cfg.ShareOrigin, "flags win")
	assert.Equal(t, "/file/cache.db", cfg.CacheDSN, "config file beats environment")
	assert.Equal(t, "env-token", cfg.GithubToken, "environment fills the rest")
	assert.Equal(t, "dark", cfg.Theme)
	assert.True(t, cfg.Verbose)
}

func TestResolveConfig_Invalid(t *testing.T) {
	_, err := resolveConfig(config.Config{CacheBackend: "etcd"}, "")
	assert.ErrorContains(t, err, "unknown 'cache_backend'")

	_, err = resolveConfig(config.Config{}, "/nonexistent/config.json")
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestRunBuild_Offline(t *testing.T) {
	a, out := testApp(t, config.Config{})
	formPath := writeFile(t, "form.json", offlineForm)
	outputPath := filepath.Join(t.TempDir(), "out", "resume.json")

	require.NoError(t, runBuild(context.Background(), a, buildOptions{FormPath: formPath, Output: outputPath}))

	link := strings.TrimSpace(out.String())
	assert.True(t, strings.HasPrefix(link, share.DefaultOrigin+"?resume="), link)

	shared := a.codec.Decode(link)
	require.NotNil(t, shared)
	assert.Equal(t, "Jane Doe", shared.PersonalInfo.Name)
	assert.Equal(t, []string{"Shipped the thing"}, shared.Experience[0].Highlights)
	assert.Nil(t, shared.GithubData)

	cached := a.cache.Load(context.Background())
	assert.Equal(t, shared, cached)

	written, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var fromFile types.ResumeData
	require.NoError(t, json.Unmarshal(written, &fromFile))
	assert.Equal(t, shared, &fromFile)
}

func TestRunBuild_WithGithub(t *testing.T) {
	server := fakeGithub(t)
	a, out := testApp(t, config.Config{GithubAPIURL: server.URL, ShareOrigin: "https://resume.example.com"})
	formPath := writeFile(t, "form.json", octocatForm)

	require.NoError(t, runBuild(context.Background(), a, buildOptions{FormPath: formPath}))

	data := a.codec.Decode(strings.TrimSpace(out.String()))
	require.NotNil(t, data)
	assert.Equal(t, "octocat", data.GithubUsername)
	assert.NotNil(t, data.Experience)
	assert.Empty(t, data.Experience)
	assert.Equal(t, []string{"Go", "Rust", "C++"}, data.Skills)
	require.NotNil(t, data.GithubData)
	assert.Equal(t, "https://avatars.example.com/octocat.png", data.GithubData.AvatarURL)

	var featured []string
	for _, repo := range data.GithubData.Repos {
		featured = append(featured, repo.Name)
	}
	assert.Equal(t, []string{"b", "d", "c", "e"}, featured)
}

func TestRunBuild_SelectedProjects(t *testing.T) {
	server := fakeGithub(t)
	a, out := testApp(t, config.Config{GithubAPIURL: server.URL})
	formPath := writeFile(t, "form.json", octocatForm)

	require.NoError(t, runBuild(context.Background(), a, buildOptions{FormPath: formPath, Projects: []string{"a", "c"}}))

	data := a.codec.Decode(strings.TrimSpace(out.String()))
	require.NotNil(t, data)
	require.NotNil(t, data.GithubData)
	require.Len(t, data.GithubData.Repos, 2)
	assert.Equal(t, "a", data.GithubData.Repos[0].Name)
	assert.Equal(t, "c", data.GithubData.Repos[1].Name)

	err := runBuild(context.Background(), a, buildOptions{FormPath: formPath, Projects: []string{"forked"}})
	assert.ErrorContains(t, err, "project not found: forked")
}

func TestRunBuild_GithubFailure(t *testing.T) {
	server := fakeGithub(t)
	a, out := testApp(t, config.Config{GithubAPIURL: server.URL})
	formPath := writeFile(t, "form.json", strings.Replace(octocatForm, "octocat ", "ghost ", 1))

	err := runBuild(context.Background(), a, buildOptions{FormPath: formPath})
	assert.ErrorContains(t, err, "failed to fetch GitHub data")
	assert.Empty(t, out.String())
	assert.Nil(t, a.cache.Load(context.Background()), "nothing should be cached when enrichment fails")
}

func TestRunBuild_NoGithub(t *testing.T) {
	a, out := testApp(t, config.Config{GithubAPIURL: "http://127.0.0.1:0"})
	formPath := writeFile(t, "form.json", octocatForm)

	require.NoError(t, runBuild(context.Background(), a, buildOptions{FormPath: formPath, NoGithub: true}))

	data := a.codec.Decode(strings.TrimSpace(out.String()))
	require.NotNil(t, data)
	assert.Equal(t, "octocat", data.GithubUsername)
	assert.Nil(t, data.GithubData)
}

func TestRunBuild_InvalidForm(t *testing.T) {
	a, _ := testApp(t, config.Config{})

	err := runBuild(context.Background(), a, buildOptions{FormPath: writeFile(t, "form.json", `{"name": "", "title": "t", "email": "e"}`)})
	assert.ErrorContains(t, err, "missing required fields: name")

	err = runBuild(context.Background(), a, buildOptions{FormPath: writeFile(t, "form.json", offlineForm), Projects: []string{"a"}})
	assert.ErrorContains(t, err, "--projects needs a GitHub username")
}

func TestRunOpen(t *testing.T) {
	a, out := testApp(t, config.Config{})
	ctx := context.Background()

	require.NoError(t, runOpen(ctx, a, ""))
	assert.Equal(t, noStateMessage+"\n", out.String())

	cached := &types.ResumeData{
		PersonalInfo: types.PersonalInfo{Name: "Cached", Title: "t", Email: "e"},
		Experience:   []types.Experience{},
		Education:    []string{},
		Skills:       []string{},
	}
	a.cache.Save(ctx, cached)

	out.Reset()
	require.NoError(t, runOpen(ctx, a, ""))
	var restored types.ResumeData
	require.NoError(t, json.Unmarshal(out.Bytes(), &restored))
	assert.Equal(t, "Cached", restored.PersonalInfo.Name)

	shared := cached.Clone()
	shared.PersonalInfo.Name = "Shared"
	link, ok := a.codec.Encode(shared)
	require.True(t, ok)

	out.Reset()
	require.NoError(t, runOpen(ctx, a, link))
	require.NoError(t, json.Unmarshal(out.Bytes(), &restored))
	assert.Equal(t, "Shared", restored.PersonalInfo.Name, "link beats cache")
}

func TestRunRender(t *testing.T) {
	a, out := testApp(t, config.Config{Theme: "dark"})
	ctx := context.Background()
	output := filepath.Join(t.TempDir(), "site", "resume.html")

	err := runRender(ctx, a, "", output)
	assert.EqualError(t, err, noStateMessage)

	a.cache.Save(ctx, &types.ResumeData{
		PersonalInfo: types.PersonalInfo{Name: "Jane Doe", Title: "Engineer", Email: "jane@example.com"},
		Skills:       []string{"Go"},
	})
	require.NoError(t, runRender(ctx, a, "", output))
	assert.Contains(t, out.String(), "Rendered "+output)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc.Find("h1.name").Text())
	assert.True(t, doc.Find("body").HasClass("dark"))
}

func TestRunValidateForm(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runValidateForm(&out, writeFile(t, "form.json", offlineForm), ""))
	assert.Contains(t, out.String(), "Validation passed")

	err := runValidateForm(&out, writeFile(t, "form.json", `{"name": "n", "title": "t", "email": "e", "age": 30}`), "")
	assert.ErrorContains(t, err, "validation failed")

	err = runValidateForm(&out, writeFile(t, "form.json", `{"name": "n", "title": " ", "email": ""}`), "")
	assert.ErrorContains(t, err, "missing required fields")
}

func TestRunValidateResume(t *testing.T) {
	var out bytes.Buffer
	valid := `{
		"personalInfo": {"name": "Jane", "title": "Engineer", "email": "jane@example.com"},
		"experience": [],
		"education": [],
		"skills": ["Go"],
		"githubUsername": ""
	}`
	require.NoError(t, runValidateResume(&out, writeFile(t, "resume.json", valid), ""))
	assert.Contains(t, out.String(), "Validation passed")

	err := runValidateResume(&out, writeFile(t, "resume.json", `{"personalInfo": {"name": "Jane"}}`), "")
	assert.ErrorContains(t, err, "validation failed")

	emptyName := strings.Replace(valid, `"name": "Jane"`, `"name": ""`, 1)
	err = runValidateResume(&out, writeFile(t, "resume.json", emptyName), "")
	assert.ErrorContains(t, err, "required field(s) empty")

	err = runValidateResume(&out, "/nonexistent/resume.json", "")
	assert.ErrorContains(t, err, "failed to read resume file")
}

func TestRunValidate_CustomSchema(t *testing.T) {
	// House rule: a GitHub username is mandatory.
	schemaPath := writeFile(t, "house.schema.json", `{
		"type": "object",
		"required": ["githubUsername"],
		"properties": {"githubUsername": {"type": "string", "minLength": 1}}
	}`)

	var out bytes.Buffer
	require.NoError(t, runValidateForm(&out, writeFile(t, "form.json", octocatForm), schemaPath))
	assert.Contains(t, out.String(), "Validation passed")

	err := runValidateForm(&out, writeFile(t, "form.json", offlineForm), schemaPath)
	assert.ErrorContains(t, err, "validation against "+schemaPath+" failed")

	resume := `{
		"personalInfo": {"name": "Jane", "title": "Engineer", "email": "jane@example.com"},
		"experience": [], "education": [], "skills": [], "githubUsername": ""
	}`
	err = runValidateResume(&out, writeFile(t, "resume.json", resume), schemaPath)
	assert.ErrorContains(t, err, "validation against")

	err = runValidateForm(&out, writeFile(t, "form.json", octocatForm), filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "could not use schema")
}

func TestRunCacheClear(t *testing.T) {
	a, out := testApp(t, config.Config{})
	ctx := context.Background()

	a.cache.Save(ctx, &types.ResumeData{PersonalInfo: types.PersonalInfo{Name: "n"}})
	require.NotNil(t, a.cache.Load(ctx))

	require.NoError(t, runCacheClear(ctx, a))
	assert.Nil(t, a.cache.Load(ctx))
	assert.Equal(t, "Cache cleared\n", out.String())
}

func TestNewApp_SQLitePersists(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	first, _ := testApp(t, config.Config{CacheBackend: cache.BackendSQLite, CacheDSN: dsn})
	first.cache.Save(ctx, &types.ResumeData{PersonalInfo: types.PersonalInfo{Name: "Persisted"}})
	first.Close()

	second, _ := testApp(t, config.Config{CacheBackend: cache.BackendSQLite, CacheDSN: dsn})
	restored := second.cache.Load(ctx)
	require.NotNil(t, restored)
	assert.Equal(t, "Persisted", restored.PersonalInfo.Name)
}

func TestFirstArg(t *testing.T) {
	assert.Equal(t, "", firstArg(nil))
	assert.Equal(t, "?resume=abc", firstArg([]string{"?resume=abc", "extra"}))
}
