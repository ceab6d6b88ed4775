// Copyright (c) 2018 OysterPack, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// helloserver demos a cancellable TCP accept loop.
//
// Each accepted connection is greeted and closed. SIGINT / SIGTERM are translated into a
// cancellation request - the connection that is currently being served is not interrupted,
// and the loop exits at its next checkpoint.
//
//	./helloserver -addr 127.0.0.1:6556
package main

import (
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/oysterpack/looper.go/pkg/looper"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	addr     = flag.String("addr", "127.0.0.1:6556", "listen address")
	loglevel = flag.String("loglevel", "info", "zerolog log level")
)

// helloService is the classic server accept loop turned into a cancellable loop
type helloService struct {
	listener net.Listener
}

func (s *helloService) Step(ctl looper.Checkpoint) (struct{}, looper.LoopState, error) {
	if ctl.Cancelled() {
		return struct{}{}, looper.Break, nil
	}
	conn, err := s.listener.Accept()
	if err != nil {
		return struct{}{}, looper.Break, err
	}
	defer conn.Close()
	if _, err := conn.Write([]byte("hello!\n")); err != nil {
		return struct{}{}, looper.Break, err
	}
	return struct{}{}, looper.Continue, nil
}

func main() {
	flag.Parse()
	level, err := zerolog.ParseLevel(*loglevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -loglevel")
	}
	zerolog.SetGlobalLevel(level)

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatal().Err(err).Msg("listen failed")
	}

	log.Info().Str("addr", *addr).Msg("server running")
	h := looper.Spawn[struct{}](&helloService{listener: listener})
	exit := h.Canceller()

	// translate OS signals into a cancellation request. Closing the listener unblocks the
	// accept the loop may currently be parked in.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info().Str("signal", sig.String()).Msg("server terminating")
		exit.Cancel()
		listener.Close()
	}()

	if _, err := h.Wait(); err != nil {
		// the accept loop reports an error when its listener is closed underneath it - that
		// is the expected shutdown path here
		log.Info().Err(err).Msg("server terminated")
		return
	}
	log.Info().Msg("server terminated")
}
