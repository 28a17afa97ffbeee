package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/darkclainer/wordgo/pkg/querier"
)

type App struct {
	conf    *Config
	logger  *zap.Logger
	service *querier.Service
}

func New(logger *zap.Logger, conf *Config) (*App, error) {
	var q querier.Querier
	q = querier.NewRemote(nil, nil, &conf.Remote, logger)
	if conf.Cached.Enabled {
		cached, err := querier.NewCached(q, &conf.Cached, logger)
		if err != nil {
			_ = q.Close(context.Background())
			return nil, err
		}
		q = cached
	}
	return &App{
		conf:    conf,
		logger:  logger,
		service: querier.NewService(q, logger),
	}, nil
}

// Run performs lookups requested by config and renders them. It returns exit code.
func (a *App) Run(ctx context.Context, in io.Reader, out, errOut io.Writer) int {
	if !a.conf.Interactive {
		response := a.lookup(ctx, a.conf.Query())
		a.render(out, errOut, response)
		return response.ExitCode()
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		a.render(out, errOut, a.lookup(ctx, querier.Literal(line)))
	}
	if err := scanner.Err(); err != nil {
		a.logger.Error("Can not read input", zap.Error(err))
		return codeInternalError
	}
	return 0
}

func (a *App) lookup(ctx context.Context, query querier.Query) *Response {
	result, err := a.service.Lookup(ctx, query)
	return newResponse(result, err)
}

func (a *App) render(out, errOut io.Writer, response *Response) {
	for _, e := range response.Errors {
		fmt.Fprintf(errOut, "warning: %s\n", e)
	}
	var err error
	if a.conf.JSON {
		err = writeJSON(out, response)
	} else {
		err = writeText(out, response)
	}
	if err != nil {
		a.logger.Error("Rendering failed", zap.Error(err))
	}
}

func (a *App) Close(ctx context.Context) error {
	return a.service.Close(ctx)
}
