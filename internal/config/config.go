package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/kn/internal/constants"
	"github.com/spf13/viper"
)

// SyncConfig names where `kn sync` writes notes: an S3 bucket, or Dir.
type SyncConfig struct {
	Bucket   string `yaml:"bucket"   json:"bucket"`
	Prefix   string `yaml:"prefix"   json:"prefix"`
	Region   string `yaml:"region"   json:"region"`
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	// Static keys for S3 compatible stores; empty uses the default AWS
	// credential chain.
	AccessKeyID     string `yaml:"access_key_id"     json:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" json:"secret_access_key"`
	Dir             string `yaml:"dir"               json:"dir"`
}

// Workspace is one notes server profile.
type Workspace struct {
	BaseURL          string     `yaml:"base_url"          json:"base_url"`
	CSRFToken        string     `yaml:"csrf_token"        json:"csrf_token"`
	SessionID        string     `yaml:"session_id"        json:"session_id"`
	Username         string     `yaml:"username"          json:"username"`
	UserID           int64      `yaml:"user_id"           json:"user_id"`
	Editor           string     `yaml:"editor"            json:"editor"`
	EditorCommand    string     `yaml:"editor_command"    json:"editor_command"`
	PlaceholderTitle string     `yaml:"placeholder_title" json:"placeholder_title"`
	ToastDuration    int        `yaml:"toast_duration"    json:"toast_duration"`
	RequestTimeout   int        `yaml:"request_timeout"   json:"request_timeout"`
	BootstrapFile    string     `yaml:"bootstrap_file"    json:"bootstrap_file"`
	CacheSizeMB      int64      `yaml:"cache_size_mb"     json:"cache_size_mb"`
	Sync             SyncConfig `yaml:"sync"              json:"sync"`
}

type Config struct {
	Workspaces       map[string]*Workspace `yaml:"workspaces"        json:"workspaces"`
	CurrentWorkspace string                `yaml:"current_workspace" json:"current_workspace"`

	active *Workspace `yaml:"-"`
	path   string     `yaml:"-"`
}

const (
	defaultWorkspaceName = "default"
	defaultBaseURL       = "http://localhost:8000"
	defaultEditor        = "textarea"
)

var validEditorNames = []string{"textarea", "external"}

var ValidEditors = func() map[string]bool {
	editors := make(map[string]bool, len(validEditorNames))
	for _, editor := range validEditorNames {
		editors[editor] = true
	}

	return editors
}()

func ValidateEditor(editor string) error {
	if _, valid := ValidEditors[editor]; valid {
		return nil
	}

	return fmt.Errorf(
		"invalid editor: %q. Please choose from %s.",
		editor,
		validEditorList(),
	)
}

func validEditorList() string {
	quoted := make([]string, len(validEditorNames))
	for i, name := range validEditorNames {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}

	if len(quoted) == 1 {
		return quoted[0]
	}

	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}

// ValidateBaseURL requires an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base url %q: expected http(s)://host", raw)
	}
	return nil
}

func NewWorkspace(baseURL string) *Workspace {
	ws := &Workspace{BaseURL: strings.TrimSpace(baseURL)}
	ws.ensureDefaults()
	return ws
}

func (ws *Workspace) ensureDefaults() {
	ws.BaseURL = strings.TrimRight(strings.TrimSpace(ws.BaseURL), "/")
	if ws.BaseURL == "" {
		ws.BaseURL = defaultBaseURL
	}
	if ws.Editor == "" {
		ws.Editor = defaultEditor
	}
	if strings.TrimSpace(ws.PlaceholderTitle) == "" {
		ws.PlaceholderTitle = constants.DefaultPlaceholderTitle
	}
	if ws.ToastDuration <= 0 {
		ws.ToastDuration = constants.DefaultToastDuration
	}
	if ws.RequestTimeout < 0 {
		ws.RequestTimeout = 0
	}
	if ws.CacheSizeMB <= 0 {
		ws.CacheSizeMB = constants.DefaultCacheSizeMB
	}
}

func (ws *Workspace) Toast() time.Duration {
	return time.Duration(ws.ToastDuration) * time.Millisecond
}

// Timeout is the per-request limit; zero means none.
func (ws *Workspace) Timeout() time.Duration {
	return time.Duration(ws.RequestTimeout) * time.Second
}

// EditorCommandLine resolves the external editor command, falling back to
// $VISUAL, $EDITOR and finally vi.
func (ws *Workspace) EditorCommandLine() string {
	for _, candidate := range []string{ws.EditorCommand, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if c := strings.TrimSpace(candidate); c != "" {
			return c
		}
	}
	return "vi"
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) == 0 {
		cfg.Workspaces = map[string]*Workspace{
			defaultWorkspaceName: NewWorkspace(""),
		}
		cfg.CurrentWorkspace = defaultWorkspaceName
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.path = path

	if err := cfg.ensureInitialized(); err != nil {
		return nil, err
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return nil, err
	}

	if err := ValidateEditor(ws.Editor); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) ensureInitialized() error {
	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}

	if cfg.CurrentWorkspace == "" {
		if len(cfg.Workspaces) == 0 {
			cfg.Workspaces[defaultWorkspaceName] = NewWorkspace("")
			cfg.CurrentWorkspace = defaultWorkspaceName
		} else {
			cfg.CurrentWorkspace = cfg.WorkspaceNames()[0]
		}
	}

	return cfg.setActiveWorkspace(cfg.CurrentWorkspace)
}

func (cfg *Config) setActiveWorkspace(name string) error {
	if name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	ws, ok := cfg.Workspaces[name]
	if !ok {
		return fmt.Errorf("workspace %q does not exist", name)
	}
	if ws == nil {
		ws = NewWorkspace("")
		cfg.Workspaces[name] = ws
	}

	ws.ensureDefaults()
	cfg.CurrentWorkspace = name
	cfg.active = ws

	cfg.syncViperWithActiveWorkspace()

	return nil
}

func (cfg *Config) syncViperWithActiveWorkspace() {
	if cfg.active == nil {
		return
	}

	ws := cfg.active
	viper.Set("workspace", cfg.CurrentWorkspace)
	viper.Set("base_url", ws.BaseURL)
	viper.Set("editor", ws.Editor)
	viper.Set("editor_command", ws.EditorCommand)
	viper.Set("placeholder_title", ws.PlaceholderTitle)
	viper.Set("toast_duration", ws.ToastDuration)
	viper.Set("request_timeout", ws.RequestTimeout)
	viper.Set("cache_size_mb", ws.CacheSizeMB)
}

func (cfg *Config) ActiveWorkspace() (*Workspace, error) {
	if cfg.active != nil {
		return cfg.active, nil
	}

	if cfg.CurrentWorkspace == "" {
		return nil, fmt.Errorf("no workspace is currently selected")
	}

	if err := cfg.setActiveWorkspace(cfg.CurrentWorkspace); err != nil {
		return nil, err
	}

	return cfg.active, nil
}

func (cfg *Config) MustWorkspace() *Workspace {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		panic(err)
	}
	return ws
}

func (cfg *Config) WorkspaceNames() []string {
	names := make([]string, 0, len(cfg.Workspaces))
	for name := range cfg.Workspaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (cfg *Config) SwitchWorkspace(name string) error {
	if err := cfg.setActiveWorkspace(name); err != nil {
		return err
	}
	return cfg.Save()
}

// ActivateWorkspace selects a workspace for this process only.
func (cfg *Config) ActivateWorkspace(name string) error {
	return cfg.setActiveWorkspace(name)
}

func (cfg *Config) AddWorkspace(name string, ws *Workspace, makeCurrent bool) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}

	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}

	if _, exists := cfg.Workspaces[trimmed]; exists {
		return fmt.Errorf("workspace %q already exists", trimmed)
	}

	if ws == nil {
		ws = NewWorkspace("")
	}
	ws.ensureDefaults()
	if err := ValidateBaseURL(ws.BaseURL); err != nil {
		return err
	}
	if err := ValidateEditor(ws.Editor); err != nil {
		return err
	}
	cfg.Workspaces[trimmed] = ws

	if cfg.CurrentWorkspace == "" || makeCurrent {
		if err := cfg.setActiveWorkspace(trimmed); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func (cfg *Config) RemoveWorkspace(name string) error {
	if len(cfg.Workspaces) <= 1 {
		return fmt.Errorf("cannot remove the last workspace")
	}

	if _, exists := cfg.Workspaces[name]; !exists {
		return fmt.Errorf("workspace %q does not exist", name)
	}

	delete(cfg.Workspaces, name)

	if cfg.CurrentWorkspace == name {
		cfg.active = nil
		cfg.CurrentWorkspace = ""
		if err := cfg.ensureInitialized(); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func (cfg *Config) ChangeEditor(editor string) error {
	if err := ValidateEditor(editor); err != nil {
		return err
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	ws.Editor = editor
	return cfg.Save()
}

// SetSession stores the Django session cookie and CSRF token for the
// active workspace.
func (cfg *Config) SetSession(sessionID, csrfToken string) error {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	ws.SessionID = strings.TrimSpace(sessionID)
	ws.CSRFToken = strings.TrimSpace(csrfToken)
	return cfg.Save()
}

func (cfg *Config) GetConfigPath() string {
	if cfg.path != "" {
		return cfg.path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

func (cfg *Config) Save() error {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	if err := ValidateEditor(ws.Editor); err != nil {
		return err
	}

	cfg.syncViperWithActiveWorkspace()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	// Session cookies live in this file.
	return os.WriteFile(configPath, data, 0o600)
}
