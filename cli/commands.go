package cli

import (
	"bytes"
	"fmt"
	"os"

	"movie-store/config"
	"movie-store/models"
	"movie-store/services"
	"movie-store/validator"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// withService opens the store, runs fn against a movie service and always
// closes the store afterwards.
func withService(cmd *cobra.Command, opts *RootOptions, cfg *config.Config, fn func(*services.MovieService) error) (err error) {
	store, err := openStore(cmd, opts, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); err == nil {
			err = closeErr
		}
	}()

	return fn(services.NewMovieService(store))
}

func addMovies(cmd *cobra.Command, opts *RootOptions, cfg *config.Config, reqs []models.CreateMovieRequest) error {
	batch := models.CreateMoviesRequest{Movies: reqs}
	if err := validator.New().Validate(&batch); err != nil {
		return err
	}

	return withService(cmd, opts, cfg, func(ms *services.MovieService) error {
		result, err := ms.Add(batch.Movies)
		if err != nil {
			return err
		}
		return formatter(cmd, opts).Insert(result.Attempted, result.Stored)
	})
}

func newAddCommand(opts *RootOptions, cfg *config.Config) *cobra.Command {
	var req models.CreateMovieRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a single movie",
		Example: `  moviectl add --title Casablanca --year 1943
  moviectl add --title Boyhood --year 2014 --uuid 6ba7b810-9dad-11d1-80b4-00c04fd430c8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addMovies(cmd, opts, cfg, []models.CreateMovieRequest{req})
		},
	}

	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "movie title")
	cmd.Flags().IntVarP(&req.Year, "year", "y", 0, "release year")
	cmd.Flags().StringVar(&req.UUID, "uuid", "", "identifier (generated when empty or invalid)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func newListCommand(opts *RootOptions, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every stored movie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, cfg, func(ms *services.MovieService) error {
				movies, err := ms.Refresh()
				if err != nil {
					return err
				}
				return formatter(cmd, opts).Movies(movies)
			})
		},
	}
}

func newFindCommand(opts *RootOptions, cfg *config.Config) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find up to 30 movies of a year, ordered by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, cfg, func(ms *services.MovieService) error {
				movies, err := ms.FindByYear(year)
				if err != nil {
					return err
				}
				return formatter(cmd, opts).Movies(movies)
			})
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "release year")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func newCountCommand(opts *RootOptions, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, cfg, func(ms *services.MovieService) error {
				count, err := ms.Count()
				if err != nil {
					return err
				}
				return formatter(cmd, opts).Value("count", count)
			})
		},
	}
}

func newPurgeCommand(opts *RootOptions, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete every stored movie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, cfg, func(ms *services.MovieService) error {
				if err := ms.Purge(); err != nil {
					return err
				}
				return formatter(cmd, opts).Value("deleted", true)
			})
		},
	}
}

func newImportCommand(opts *RootOptions, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Add the movies listed in a YAML file",
		Long: `Add the movies listed in a YAML file of the form:

  movies:
    - title: Casablanca
      year: 1943
    - title: Boyhood
      year: 2014
      uuid: 6ba7b810-9dad-11d1-80b4-00c04fd430c8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := loadMovieFile(args[0])
			if err != nil {
				return err
			}
			return addMovies(cmd, opts, cfg, reqs)
		},
	}
}

// loadMovieFile reads a YAML movie list.
func loadMovieFile(path string) ([]models.CreateMovieRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var file models.CreateMoviesRequest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file.Movies, nil
}
