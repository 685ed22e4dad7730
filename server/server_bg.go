package server

import (
	"sync/atomic"
	"time"
)

func (s *Server) backgroundRoutines() {

	// initial state
	s.state.Stats.System.loadStats()
	//collecting sys stats
	go func() {
		for range s.syncConnected {
			if atomic.CompareAndSwapInt32(&(s.syncSemphor), 0, 1) {
				go s.tickerRoutine()
			}
		}
	}()

	c := s.engine.Config()
	if c.WatchTree && c.TreeFile != "" {
		if err := s.engine.StartTreeWatcher(); err != nil {
			log.Println(err)
		}
	}
}

// tickerRoutine refreshes the sys stats while browsers are connected
func (s *Server) tickerRoutine() {
	dur := 3 * time.Second
	tk := time.NewTicker(dur)
	defer tk.Stop()

	log.Println("[tickerRoutine] sync connected, ticking for", dur)
	var noConnCount uint
	for range tk.C {

		if s.state.NumConnections() == 0 {
			noConnCount++
		} else {
			noConnCount = 0
		}
		if noConnCount > 60 { // about 3 minutes
			atomic.StoreInt32(&(s.syncSemphor), 0)
			log.Println("[tickerRoutine] exit for no web connections")
			return
		}

		s.state.Stats.System.loadStats()
	}
}
