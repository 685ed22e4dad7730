package server

import (
	"compress/gzip"
	"crypto/tls"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/boypt/simple-explorer/engine"
	"github.com/boypt/simple-explorer/server/httpmiddleware"
	ctstatic "github.com/boypt/simple-explorer/static"
	"github.com/boypt/simple-explorer/tree"
	"github.com/jpillora/cookieauth"
	"github.com/jpillora/requestlog"
	"github.com/jpillora/velox"
	"github.com/skratchdot/open-golang/open"
)

var (
	log = stdlog.New(os.Stdout, "[server]", stdlog.LstdFlags|stdlog.Lmsgprefix)
)

//Server is the "State" portion of the diagram
type Server struct {
	//config
	Title          string `opts:"help=Title of this instance,env=TITLE"`
	Port           int    `opts:"help=Listening port,env=PORT"`
	Host           string `opts:"help=Listening interface (default all)"`
	Auth           string `opts:"help=Optional basic auth in form 'user:password',env=AUTH"`
	ConfigPath     string `opts:"help=Configuration file path"`
	TreeFile       string `opts:"help=Tree payload file (json or yaml) to load and watch"`
	KeyPath        string `opts:"help=TLS Key file path"`
	CertPath       string `opts:"help=TLS Certicate file path,short=r"`
	Log            bool   `opts:"help=Enable request logging"`
	Open           bool   `opts:"help=Open now with your default browser"`
	DisableLogTime bool   `opts:"help=Don't print timestamp in log"`
	Debug          bool   `opts:"help=Log rejected drops and other debug lines"`

	//http handlers
	statich http.Handler

	baseInfo *BaseInfo

	//tree engine
	engine        *engine.Engine
	syncConnected chan struct{}
	syncSemphor   int32
	state         struct {
		velox.State
		sync.Mutex
		Explorer engine.View
		Config   engine.Config
		Users    map[string]string
		Stats    struct {
			System stats
		}
	}
}

func (s *Server) init(version string) error {
	if s.DisableLogTime {
		log.SetFlags(stdlog.Lmsgprefix)
		engine.SetLoggerFlag(stdlog.Lmsgprefix)
	}

	s.baseInfo = &BaseInfo{
		Uptime:  time.Now().Unix(),
		Title:   s.Title,
		Version: version,
		Runtime: strings.TrimPrefix(runtime.Version(), "go"),
	}
	s.state.Users = map[string]string{}
	s.state.Stats.System.pusher = velox.Pusher(&s.state)
	s.syncConnected = make(chan struct{})
	s.statich = ctstatic.FileSystemHandler()

	c, err := engine.InitConf(s.ConfigPath)
	if err != nil {
		return fmt.Errorf("initial configure failed: %w", err)
	}
	// command line wins over the config file
	if s.TreeFile != "" {
		c.TreeFile = s.TreeFile
		if _, err := c.NormlizeTreeFile(); err != nil {
			return err
		}
	}
	if s.Debug {
		c.Debug = true
	}
	if s.Title != "" {
		c.Title = s.Title
	}
	s.baseInfo.Title = c.Title
	s.baseInfo.AllowRuntimeConfigure = c.AllowRuntimeConfigure

	s.engine = engine.New()
	if err := s.engine.Configure(*c); err != nil {
		return err
	}
	s.engine.SetNotify(s.pushExplorer)
	s.state.Config = *c

	if c.TreeFile != "" {
		if err := s.engine.LoadTreeFile(c.TreeFile); err != nil {
			return fmt.Errorf("tree file: %w", err)
		}
	} else {
		if err := s.engine.Load(tree.Sample()); err != nil {
			return err
		}
	}
	return nil
}

// Run the server
func (s *Server) Run(version string) error {
	isTLS := s.CertPath != "" || s.KeyPath != "" //poor man's XOR
	if isTLS && (s.CertPath == "" || s.KeyPath == "") {
		return fmt.Errorf("You must provide both key and cert paths")
	}

	if err := s.init(version); err != nil {
		return err
	}
	defer s.engine.Close()
	s.backgroundRoutines()

	host := s.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, s.Port)
	proto := "http"
	if isTLS {
		proto += "s"
	}
	if s.Open {
		openhost := host
		if openhost == "0.0.0.0" {
			openhost = "localhost"
		}
		go func() {
			time.Sleep(1 * time.Second)
			open.Run(fmt.Sprintf("%s://%s:%d", proto, openhost, s.Port))
		}()
	}

	log.Printf("Listening at %s://%s", proto, addr)
	//serve!
	server := http.Server{
		//disable http2 due to velox bug
		TLSNextProto: map[string]func(*http.Server, *tls.Conn, http.Handler){},
		//address
		Addr: addr,
		//handler stack
		Handler: s.handler(),
	}
	if isTLS {
		return server.ListenAndServeTLS(s.CertPath, s.KeyPath)
	}
	return server.ListenAndServe()
}

// handler builds the middleware chain, from last to first
func (s *Server) handler() http.Handler {
	h := http.Handler(http.HandlerFunc(s.webHandle))
	//gzip
	gzipWrap, _ := gziphandler.NewGzipLevelAndMinSize(gzip.DefaultCompression, 0)
	h = gzipWrap(h)
	//auth
	if s.Auth != "" {
		user := s.Auth
		pass := ""
		if s := strings.SplitN(s.Auth, ":", 2); len(s) == 2 {
			user = s[0]
			pass = s[1]
		}
		ca := cookieauth.New()
		ca.SetUserPass(user, pass)
		h = ca.Wrap(h)
		log.Printf("Enabled HTTP authentication")
	}
	h = httpmiddleware.Liveness(h, func() error {
		if s.engine.Snapshot() == nil {
			return engine.ErrNoTree
		}
		return nil
	})
	if s.Log {
		h = requestlog.Wrap(h)
	}
	return h
}

// pushExplorer copies the engine view into the realtime state.
func (s *Server) pushExplorer() {
	v := s.engine.View()
	s.state.Lock()
	s.state.Explorer = v
	s.state.Unlock()
	s.state.Push()
}
