package app

import (
	"github.com/lpr1983/filmorate/internal/config"
	http_film "github.com/lpr1983/filmorate/internal/delivery/http/film"
	http_init "github.com/lpr1983/filmorate/internal/delivery/http/init"
	http_reference "github.com/lpr1983/filmorate/internal/delivery/http/reference"
	http_user "github.com/lpr1983/filmorate/internal/delivery/http/user"
	infra_memory_film "github.com/lpr1983/filmorate/internal/infra/memory/film"
	infra_memory_reference "github.com/lpr1983/filmorate/internal/infra/memory/reference"
	infra_memory_user "github.com/lpr1983/filmorate/internal/infra/memory/user"
	infra_postgres_film "github.com/lpr1983/filmorate/internal/infra/postgres/film"
	infra_pg_init "github.com/lpr1983/filmorate/internal/infra/postgres/init"
	infra_postgres_reference "github.com/lpr1983/filmorate/internal/infra/postgres/reference"
	infra_postgres_user "github.com/lpr1983/filmorate/internal/infra/postgres/user"
	usecase_film "github.com/lpr1983/filmorate/internal/usecase/film"
	usecase_reference "github.com/lpr1983/filmorate/internal/usecase/reference"
	usecase_user "github.com/lpr1983/filmorate/internal/usecase/user"
)

type repositories struct {
	films      usecase_film.Repository
	users      usecase_user.Repository
	reference  usecase_reference.Repository
	likeEraser usecase_user.LikeEraser
}

func Go(cfg *config.Config) {
	repos := buildRepositories(cfg)

	referenceUC := usecase_reference.New(repos.reference)
	filmUC := usecase_film.New(repos.films, repos.users, referenceUC)
	userUC := usecase_user.New(repos.users, repos.likeEraser)

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_film.New(filmUC))
	controllerPool.Add(http_user.New(userUC))
	controllerPool.Add(http_reference.New(referenceUC))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}

func buildRepositories(cfg *config.Config) repositories {
	if cfg.Storage.Backend == config.BackendMemory {
		films := infra_memory_film.New()
		return repositories{
			films:      films,
			users:      infra_memory_user.New(),
			reference:  infra_memory_reference.New(),
			likeEraser: films,
		}
	}

	db := infra_pg_init.MustEstablishConn(cfg.Postgres)
	films := infra_postgres_film.New(db)
	return repositories{
		films:      films,
		users:      infra_postgres_user.New(db),
		reference:  infra_postgres_reference.New(db),
		likeEraser: films,
	}
}
