package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/armourconstruction/site/internal/config"
	"github.com/armourconstruction/site/internal/content"
	"github.com/armourconstruction/site/internal/render"
	"github.com/armourconstruction/site/internal/server"
	"github.com/armourconstruction/site/internal/site"
)

const (
	buildConcurrency = 8
	staticDir        = "static"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Renders every page of the site into the output directory",
	Long: `The build command renders each page reachable without query parameters
to <outputDir>/<path>/index.html, writes a Markdown copy of every blog post
next to its page, and copies the stylesheets to <outputDir>/static.
The output directory is removed first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess(cmd.Context(), appConfig, logger)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

// loadAssets reads content and layouts from the configured directories, or
// the embedded copies when they are unset.
func loadAssets(cfg *config.Config) (*server.Assets, error) {
	catalog, err := content.Load(content.Source(cfg.ContentDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	renderer, err := render.New(render.Source(cfg.LayoutsDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load layouts: %w", err)
	}
	return &server.Assets{
		Site:     site.New(catalog, site.Options{SiteTitle: cfg.SiteTitle, BaseURL: cfg.BaseURL}),
		Renderer: renderer,
	}, nil
}

func runBuildProcess(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	start := time.Now()
	logger.Info("starting build",
		zap.String("outputDir", cfg.OutputDir),
		zap.String("baseURL", cfg.BaseURL),
	)

	assets, err := loadAssets(cfg)
	if err != nil {
		return err
	}

	outputDir := cfg.OutputDir
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("failed to clean output directory %s: %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	routes := assets.Site.Routes()
	posts := assets.Site.Catalog().Posts()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(buildConcurrency)
	for _, route := range routes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writePage(assets.Renderer, pageFile(outputDir, route.Path), route.Page, route.Data)
		})
	}
	for _, p := range posts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			md, err := content.PostMarkdown(p)
			if err != nil {
				return fmt.Errorf("failed to export post %d: %w", p.ID, err)
			}
			return writeFile(filepath.Join(outputDir, "blog", strconv.Itoa(p.ID)+".md"), []byte(md))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := copyDirContents(render.Static(), filepath.Join(outputDir, staticDir)); err != nil {
		return fmt.Errorf("failed to copy static assets: %w", err)
	}

	logger.Info("build complete",
		zap.Int("pages", len(routes)),
		zap.Int("markdown", len(posts)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// pageFile maps a route path to its index.html under outputDir.
func pageFile(outputDir, route string) string {
	return filepath.Join(outputDir, filepath.FromSlash(path.Clean("/"+route)), "index.html")
}

func writePage(r *render.Renderer, file, page string, data any) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, page, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", file, err)
	}
	return writeFile(file, buf.Bytes())
}

func writeFile(file string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", file, err)
	}
	if err := os.WriteFile(file, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	return nil
}

// copyDirContents copies every file of src into dst, keeping the layout.
func copyDirContents(src fs.FS, dst string) error {
	return fs.WalkDir(src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, filepath.FromSlash(name))
		if d.IsDir() {
			if err := os.MkdirAll(dstPath, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}
		if err := copyFile(src, name, dstPath); err != nil {
			return fmt.Errorf("failed to copy file from %s to %s: %w", name, dstPath, err)
		}
		return nil
	})
}

// copyFile copies a single file from src to dstFile.
func copyFile(src fs.FS, name, dstFile string) error {
	srcF, err := src.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", name, err)
	}
	defer srcF.Close()

	dstF, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstFile, err)
	}
	if _, err := io.Copy(dstF, srcF); err != nil {
		dstF.Close()
		return fmt.Errorf("failed to copy data to %s: %w", dstFile, err)
	}
	return dstF.Close()
}
