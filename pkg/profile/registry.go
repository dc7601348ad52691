package profile

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/numbering/pkg/numbering"
)

// Event names passed to the change callback.
const (
	EventCreate = "create"
	EventModify = "modify"
	EventRemove = "remove"
)

// Registry manages a collection of calibration profiles.
type Registry interface {
	// Register adds a profile to the registry
	Register(p *Profile) error

	// Unregister removes a profile from the registry
	Unregister(name string) error

	// Get returns a profile by name
	Get(name string) (*Profile, bool)

	// List returns all registered profiles sorted by name
	List() []*Profile

	// Recognizer returns the compiled recognizer of a profile
	Recognizer(name string) (*numbering.Recognizer, error)

	// Reload reloads all profiles from the configured directory
	Reload() error

	// Watch starts watching the profile directory for changes
	Watch() error

	// StopWatch stops watching the profile directory
	StopWatch()

	// LoadDirectory loads all profiles from a directory
	LoadDirectory(dir string) error

	// LoadFile loads a single profile file
	LoadFile(path string) error
}

// DefaultRegistry is the default implementation of Registry. The built-in
// default profile is always present and cannot be removed.
type DefaultRegistry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	files    map[string]string // file path -> profile name
	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onChange func(event string, p *Profile)
	logger   *slog.Logger
}

// NewRegistry creates a registry holding only the built-in default profile.
func NewRegistry() *DefaultRegistry {
	r := &DefaultRegistry{
		profiles: make(map[string]*Profile),
		files:    make(map[string]string),
		logger:   slog.Default(),
	}
	r.profiles[DefaultName] = Default()
	return r
}

// NewRegistryWithDirectory creates a registry and loads profiles from dir.
func NewRegistryWithDirectory(dir string) (*DefaultRegistry, error) {
	r := NewRegistry()
	if err := r.LoadDirectory(dir); err != nil {
		return nil, err
	}
	return r, nil
}

// SetLogger sets the logger used for watch events and load failures.
func (r *DefaultRegistry) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// SetOnChange sets a callback function that is called when profiles change.
func (r *DefaultRegistry) SetOnChange(fn func(event string, p *Profile)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Register adds a profile. A profile with the same name is replaced when
// its version differs or when it is re-read from the same file. The built-in
// default profile cannot be replaced.
func (r *DefaultRegistry) Register(p *Profile) error {
	if p == nil {
		return fmt.Errorf("profile cannot be nil")
	}
	if p.Name == DefaultName {
		return fmt.Errorf("profile %q is built in", p.Name)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	if !p.IsCompiled() {
		if err := p.Compile(); err != nil {
			return fmt.Errorf("compiling profile %q: %w", p.Name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.profiles[p.Name]; ok {
		// A file may be re-read under the same version; anything else needs a new version.
		if existing.Version == p.Version && (p.source == "" || existing.source != p.source) {
			return fmt.Errorf("profile %q version %s already registered", p.Name, p.Version)
		}
		if existing.source != "" && existing.source != p.source {
			delete(r.files, existing.source)
		}
	}

	if p.source != "" {
		// The file may have renamed its profile.
		if prevName, ok := r.files[p.source]; ok && prevName != p.Name {
			if prev, ok := r.profiles[prevName]; ok && prev.source == p.source {
				delete(r.profiles, prevName)
			}
		}
		r.files[p.source] = p.Name
	}
	r.profiles[p.Name] = p
	return nil
}

// Unregister removes a profile.
func (r *DefaultRegistry) Unregister(name string) error {
	if name == DefaultName {
		return fmt.Errorf("profile %q is built in", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(r.profiles, name)
	if p.source != "" {
		delete(r.files, p.source)
	}
	return nil
}

// Get returns a profile by name.
func (r *DefaultRegistry) Get(name string) (*Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	return p, ok
}

// List returns all registered profiles sorted by name.
func (r *DefaultRegistry) List() []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles
}

// Count returns the number of registered profiles.
func (r *DefaultRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

// Recognizer returns the compiled recognizer of the named profile. An empty
// name selects the default profile.
func (r *DefaultRegistry) Recognizer(name string) (*numbering.Recognizer, error) {
	if name == "" {
		name = DefaultName
	}
	p, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p.Recognizer(), nil
}

// LoadDirectory loads all YAML profile files from a directory. A missing
// directory is not an error.
func (r *DefaultRegistry) LoadDirectory(dir string) error {
	r.dir = dir

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := r.LoadFile(path); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", entry.Name(), err))
		}
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading profiles: %s", strings.Join(loadErrors, "; "))
	}
	return nil
}

// LoadFile loads a single profile file.
func (r *DefaultRegistry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return err
	}
	p.source = path

	if err := r.Register(p); err != nil {
		return fmt.Errorf("registering profile: %w", err)
	}
	r.logger.Debug("profile loaded", "name", p.Name, "version", p.Version, "file", path)
	return nil
}

// Parse decodes a YAML profile document. Unknown fields are rejected.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return &p, nil
}

// Reload drops every loaded profile and reloads the configured directory.
func (r *DefaultRegistry) Reload() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for reload")
	}

	r.mu.Lock()
	r.profiles = map[string]*Profile{DefaultName: Default()}
	r.files = make(map[string]string)
	r.mu.Unlock()

	return r.LoadDirectory(r.dir)
}

// Watch starts watching the profile directory for changes.
func (r *DefaultRegistry) Watch() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", r.dir, err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})
	go r.watchLoop(watcher, r.stopChan)

	r.logger.Info("watching profile directory", "dir", r.dir)
	return nil
}

func (r *DefaultRegistry) watchLoop(watcher *fsnotify.Watcher, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isYAML(event.Name) {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				r.handleFileChange(event.Name, EventCreate)
			case event.Op&fsnotify.Write == fsnotify.Write:
				r.handleFileChange(event.Name, EventModify)
			case event.Op&fsnotify.Remove == fsnotify.Remove,
				event.Op&fsnotify.Rename == fsnotify.Rename:
				r.handleFileRemove(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("profile watcher error", "error", err)
		}
	}
}

func (r *DefaultRegistry) handleFileChange(path, event string) {
	if err := r.LoadFile(path); err != nil {
		r.logger.Warn("profile reload failed", "file", path, "error", err)
		return
	}

	r.mu.RLock()
	p := r.profiles[r.files[path]]
	onChange := r.onChange
	r.mu.RUnlock()
	if p == nil {
		return
	}

	r.logger.Info("profile updated", "event", event, "name", p.Name, "version", p.Version)
	if onChange != nil {
		onChange(event, p)
	}
}

func (r *DefaultRegistry) handleFileRemove(path string) {
	r.mu.Lock()
	name, ok := r.files[path]
	var removed *Profile
	if ok {
		removed = r.profiles[name]
		delete(r.profiles, name)
		delete(r.files, path)
	}
	onChange := r.onChange
	r.mu.Unlock()

	if !ok {
		return
	}
	r.logger.Info("profile removed", "name", name, "file", path)
	if onChange != nil {
		onChange(EventRemove, removed)
	}
}

// StopWatch stops watching the profile directory.
func (r *DefaultRegistry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
		r.stopChan = nil
	}
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
