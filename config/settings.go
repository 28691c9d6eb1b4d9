package config

import "errors"

// Configuration keys recognized by taskflow.
const (
	KeyVCSProvider  = "vcs_provider"
	KeyGitHubToken  = "github_token"
	KeyGitLabToken  = "gitlab_token"
	KeyGitLabURL    = "gitlab_url"
	KeyTrelloKey    = "trello_key"
	KeyTrelloToken  = "trello_token"
	KeyBaseBranch   = "base_branch"
	KeyTodoListID   = "todo_list_id"
	KeyReviewListID = "review_list_id"
	KeyDoneListID   = "done_list_id"
	KeySlackWebhook = "slack_webhook"
	KeyDocsDir      = "docs_dir"
)

// EnvPrefix for environment variable lookup: TASKFLOW_GITHUB_TOKEN etc.
const EnvPrefix = "TASKFLOW_"

// GlobalConfigDir under ~/.config/.
const GlobalConfigDir = "taskflow"

// LocalConfigName is the project config filename in the git root.
const LocalConfigName = ".taskflow.yaml"

// ValidKeys lists all recognized configuration keys.
var ValidKeys = []string{
	KeyVCSProvider,
	KeyGitHubToken,
	KeyGitLabToken,
	KeyGitLabURL,
	KeyTrelloKey,
	KeyTrelloToken,
	KeyBaseBranch,
	KeyTodoListID,
	KeyReviewListID,
	KeyDoneListID,
	KeySlackWebhook,
	KeyDocsDir,
}

// Defaults for keys with sensible built-in values.
var Defaults = map[string]string{
	KeyVCSProvider: "github",
	KeyBaseBranch:  "main",
}

// Settings errors.
var (
	ErrVCSTokenMissing   = errors.New("no version control token configured")
	ErrTrelloAuthMissing = errors.New("trello key and token are required")
	ErrProviderUnknown   = errors.New("vcs_provider must be github or gitlab")
)

// Settings is the resolved taskflow configuration.
type Settings struct {
	VCSProvider  string
	GitHubToken  string
	GitLabToken  string
	GitLabURL    string
	TrelloKey    string
	TrelloToken  string
	BaseBranch   string
	TodoListID   string
	ReviewListID string
	DoneListID   string
	SlackWebhook string
	DocsDir      string

	// Warnings raised while resolving, e.g. unparseable config files.
	Warnings []string
}

// Load resolves taskflow settings from defaults, the global config,
// the project config, and TASKFLOW_* environment variables.
func Load() *Settings {
	resolver := NewResolver(ResolverConfig{
		EnvPrefix:       EnvPrefix,
		GlobalConfigDir: GlobalConfigDir,
		LocalConfigName: LocalConfigName,
		Defaults:        Defaults,
		ValidKeys:       ValidKeys,
	})
	return settingsFrom(resolver)
}

// LoadWithPaths resolves settings from explicit config file paths.
// Used by tests.
func LoadWithPaths(globalPath, localPath string) *Settings {
	resolver := NewResolverWithPaths(ResolverConfig{
		EnvPrefix:       EnvPrefix,
		GlobalConfigDir: GlobalConfigDir,
		LocalConfigName: LocalConfigName,
		Defaults:        Defaults,
		ValidKeys:       ValidKeys,
	}, globalPath, localPath)
	return settingsFrom(resolver)
}

func settingsFrom(resolver *Resolver) *Settings {
	cfg := resolver.Resolve()
	return &Settings{
		VCSProvider:  cfg.Get(KeyVCSProvider),
		GitHubToken:  cfg.Get(KeyGitHubToken),
		GitLabToken:  cfg.Get(KeyGitLabToken),
		GitLabURL:    cfg.Get(KeyGitLabURL),
		TrelloKey:    cfg.Get(KeyTrelloKey),
		TrelloToken:  cfg.Get(KeyTrelloToken),
		BaseBranch:   cfg.Get(KeyBaseBranch),
		TodoListID:   cfg.Get(KeyTodoListID),
		ReviewListID: cfg.Get(KeyReviewListID),
		DoneListID:   cfg.Get(KeyDoneListID),
		SlackWebhook: cfg.Get(KeySlackWebhook),
		DocsDir:      cfg.Get(KeyDocsDir),
		Warnings:     resolver.Warnings,
	}
}

// Validate checks that the settings can drive workflow runs.
func (s *Settings) Validate() error {
	switch s.VCSProvider {
	case "github":
		if s.GitHubToken == "" {
			return ErrVCSTokenMissing
		}
	case "gitlab":
		if s.GitLabToken == "" {
			return ErrVCSTokenMissing
		}
	default:
		return ErrProviderUnknown
	}

	if s.TrelloKey == "" || s.TrelloToken == "" {
		return ErrTrelloAuthMissing
	}

	return nil
}
