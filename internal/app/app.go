package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/spanline/internal/config"
	"github.com/kobzarvs/spanline/internal/logger"
	"github.com/kobzarvs/spanline/internal/reconcile"
	"github.com/kobzarvs/spanline/internal/view"
)

// Options are the command line settings.
type Options struct {
	Path     string
	Language string
	Debug    bool
}

// App is the top-level runtime for spanline.
type App struct {
	opts Options
}

func New(opts Options) *App {
	return &App{opts: opts}
}

func (a *App) Run() error {
	if err := logger.Init(a.opts.Debug); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		return err
	}
	lang, err := a.language(langs)
	if err != nil {
		return err
	}

	ed, err := NewEditor(lang, reconcile.NewArena())
	if err != nil {
		return err
	}
	if a.opts.Path != "" {
		if err := ed.Open(a.opts.Path); err != nil {
			return err
		}
	}
	logger.Info("editor started", "path", a.opts.Path, "language", langName(lang))

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	v := view.New(view.NewStyles(cfg.Theme), cfg.Editor.TabWidth, cfg.Editor.LineNumbers)
	return loop(s, v, ed)
}

func loop(s tcell.Screen, v *view.View, ed *Editor) error {
	v.Render(s, ed.Frame())
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		}
		v.Render(s, ed.Frame())
	}
}

// language resolves the profile from --language, then the file name, then
// the plain "text" profile.
func (a *App) language(langs config.Languages) (*config.Language, error) {
	if a.opts.Language != "" {
		lang := langs.Lookup(a.opts.Language)
		if lang == nil {
			return nil, fmt.Errorf("unknown language %q", a.opts.Language)
		}
		return lang, nil
	}
	if a.opts.Path != "" {
		if lang := langs.Match(a.opts.Path); lang != nil {
			return lang, nil
		}
	}
	return langs.Lookup("text"), nil
}

func langName(lang *config.Language) string {
	if lang == nil {
		return ""
	}
	return lang.Name
}
