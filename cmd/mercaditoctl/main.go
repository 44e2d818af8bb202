// mercaditoctl es el CLI del catálogo: consulta y carga categorías,
// productos y vendedores contra el API HTTP. El backend de datos se
// elige con --backend, igual que en las rutas. El subcomando seed es
// la excepción: abre los stores directamente, sin pasar por el API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/mercadito/internal/config"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
	"github.com/dropDatabas3/mercadito/internal/seed"
	"github.com/dropDatabas3/mercadito/internal/store"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/mongo"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/mysql"
)

type client struct {
	BaseURL   string
	Backend   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, u, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

// call ejecuta el request y trata cualquier status fuera de 2xx como
// error del comando.
func (c *client) call(method, path string, body []byte) error {
	status, respBody, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	if status/100 != 2 {
		return fmt.Errorf("status=%d body=%s", status, string(respBody))
	}
	c.print(status, respBody)
	return nil
}

func main() {
	var (
		baseURL = envOr("MERCADITO_URL", "http://localhost:8080")
		backend = envOr("MERCADITO_BACKEND", "mongo")
		out     = envOr("MERCADITO_OUT", "text")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "mercaditoctl",
		Short: "CLI del catálogo mercadito",
	}
	root.PersistentFlags().StringVar(&baseURL, "api-url", baseURL, "URL base del API (env MERCADITO_URL)")
	root.PersistentFlags().StringVar(&backend, "backend", backend, "Backend de datos: mongo|mysql (env MERCADITO_BACKEND)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{HTTP: &http.Client{Timeout: timeout}}
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if backend == "" {
			return fmt.Errorf("--backend es requerido (mongo|mysql)")
		}
		cl.BaseURL = baseURL
		cl.Backend = backend
		cl.OutFormat = out
		return nil
	}

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Verifica que el API responde y sus backends están listos",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/readyz", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("ping fallo: status=%d body=%s", status, string(body))
			}
			if cl.OutFormat == "text" {
				fmt.Println("ok")
				return nil
			}
			cl.print(status, body)
			return nil
		},
	}

	root.AddCommand(pingCmd)
	root.AddCommand(categoryCommands(cl))
	root.AddCommand(productCommands(cl))
	root.AddCommand(sellerCommands(cl))
	root.AddCommand(seedCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func categoryCommands(cl *client) *cobra.Command {
	cmd := &cobra.Command{Use: "category", Short: "Operaciones sobre categorías"}

	var getName string
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Busca una categoría por nombre exacto",
		RunE: func(cmd *cobra.Command, args []string) error {
			if getName == "" {
				return fmt.Errorf("--name es requerido")
			}
			return cl.call("GET", "/category/"+cl.Backend+"?name="+url.QueryEscape(getName), nil)
		},
	}
	getCmd.Flags().StringVar(&getName, "name", "", "Nombre de la categoría")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista todas las categorías",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call("GET", "/category/all/"+cl.Backend, nil)
		},
	}

	var createName string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Crea una categoría",
		RunE: func(cmd *cobra.Command, args []string) error {
			if createName == "" {
				return fmt.Errorf("--name es requerido")
			}
			b, _ := json.Marshal(map[string]string{"name": createName})
			return cl.call("POST", "/category/"+cl.Backend, b)
		},
	}
	createCmd.Flags().StringVar(&createName, "name", "", "Nombre de la categoría")

	var renameID, renameName string
	renameCmd := &cobra.Command{
		Use:   "rename",
		Short: "Renombra una categoría y propaga a las copias embebidas",
		RunE: func(cmd *cobra.Command, args []string) error {
			if renameID == "" || renameName == "" {
				return fmt.Errorf("--id y --name son requeridos")
			}
			b, _ := json.Marshal(map[string]string{"id": renameID, "name": renameName})
			return cl.call("PUT", "/category/"+cl.Backend, b)
		},
	}
	renameCmd.Flags().StringVar(&renameID, "id", "", "ID de la categoría")
	renameCmd.Flags().StringVar(&renameName, "name", "", "Nombre nuevo")

	cmd.AddCommand(getCmd, listCmd, createCmd, renameCmd)
	return cmd
}

func productCommands(cl *client) *cobra.Command {
	cmd := &cobra.Command{Use: "product", Short: "Operaciones sobre productos"}

	var getName string
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Busca un producto por nombre exacto",
		RunE: func(cmd *cobra.Command, args []string) error {
			if getName == "" {
				return fmt.Errorf("--name es requerido")
			}
			return cl.call("GET", "/product/"+cl.Backend+"?name="+url.QueryEscape(getName), nil)
		},
	}
	getCmd.Flags().StringVar(&getName, "name", "", "Nombre del producto")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista todos los productos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call("GET", "/product/all/"+cl.Backend, nil)
		},
	}

	var (
		createName, createDesc, createSeller string
		createPrice                          float64
		createImages, createCategories       []string
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un producto (valida vendedor y categorías antes de escribir)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if createName == "" || createSeller == "" {
				return fmt.Errorf("--name y --seller son requeridos")
			}
			if len(createCategories) == 0 {
				return fmt.Errorf("--category es requerido al menos una vez")
			}
			b, _ := json.Marshal(map[string]any{
				"name":         createName,
				"description":  createDesc,
				"price":        createPrice,
				"image_urls":   createImages,
				"seller_id":    createSeller,
				"category_ids": createCategories,
			})
			return cl.call("POST", "/product/"+cl.Backend, b)
		},
	}
	createCmd.Flags().StringVar(&createName, "name", "", "Nombre del producto")
	createCmd.Flags().StringVar(&createDesc, "description", "", "Descripción")
	createCmd.Flags().Float64Var(&createPrice, "price", 0, "Precio")
	createCmd.Flags().StringVar(&createSeller, "seller", "", "ID del vendedor")
	createCmd.Flags().StringSliceVar(&createImages, "image", nil, "URL de imagen (repetible)")
	createCmd.Flags().StringSliceVar(&createCategories, "category", nil, "ID de categoría (repetible)")

	var (
		updID, updName, updDesc, updSeller string
		updPrice                           float64
		updImages, updCategories           []string
	)
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Actualiza un producto completo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if updID == "" {
				return fmt.Errorf("--id es requerido")
			}
			b, _ := json.Marshal(map[string]any{
				"id":           updID,
				"name":         updName,
				"description":  updDesc,
				"price":        updPrice,
				"image_urls":   updImages,
				"seller_id":    updSeller,
				"category_ids": updCategories,
			})
			return cl.call("PUT", "/product/"+cl.Backend, b)
		},
	}
	updateCmd.Flags().StringVar(&updID, "id", "", "ID del producto")
	updateCmd.Flags().StringVar(&updName, "name", "", "Nombre")
	updateCmd.Flags().StringVar(&updDesc, "description", "", "Descripción")
	updateCmd.Flags().Float64Var(&updPrice, "price", 0, "Precio")
	updateCmd.Flags().StringVar(&updSeller, "seller", "", "ID del vendedor")
	updateCmd.Flags().StringSliceVar(&updImages, "image", nil, "URL de imagen (repetible)")
	updateCmd.Flags().StringSliceVar(&updCategories, "category", nil, "ID de categoría (repetible)")

	cmd.AddCommand(getCmd, listCmd, createCmd, updateCmd)
	return cmd
}

func sellerCommands(cl *client) *cobra.Command {
	cmd := &cobra.Command{Use: "seller", Short: "Operaciones sobre vendedores"}

	var getName string
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Busca vendedores por primer nombre (puede haber homónimos)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if getName == "" {
				return fmt.Errorf("--name es requerido")
			}
			return cl.call("GET", "/seller/"+cl.Backend+"?name="+url.QueryEscape(getName), nil)
		},
	}
	getCmd.Flags().StringVar(&getName, "name", "", "Primer nombre del vendedor")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista todos los vendedores",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call("GET", "/seller/all/"+cl.Backend, nil)
		},
	}

	var (
		accountID, firstName, lastName          string
		website, birthday, address, email, gndr string
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un vendedor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if accountID == "" || firstName == "" {
				return fmt.Errorf("--account y --first-name son requeridos")
			}
			profile := map[string]any{
				"first_name": firstName,
				"last_name":  lastName,
				"website":    website,
				"address":    address,
				"email":      email,
				"gender":     gndr,
			}
			if birthday != "" {
				t, err := time.Parse("2006-01-02", birthday)
				if err != nil {
					return fmt.Errorf("--birthday inválido (formato 2006-01-02): %w", err)
				}
				profile["birthday"] = t
			}
			b, _ := json.Marshal(map[string]any{
				"account_id": accountID,
				"profile":    profile,
			})
			return cl.call("POST", "/seller/"+cl.Backend, b)
		},
	}
	createCmd.Flags().StringVar(&accountID, "account", "", "ID de cuenta del vendedor")
	createCmd.Flags().StringVar(&firstName, "first-name", "", "Primer nombre")
	createCmd.Flags().StringVar(&lastName, "last-name", "", "Apellido")
	createCmd.Flags().StringVar(&website, "website", "", "Sitio web")
	createCmd.Flags().StringVar(&birthday, "birthday", "", "Fecha de nacimiento (2006-01-02)")
	createCmd.Flags().StringVar(&address, "address", "", "Dirección")
	createCmd.Flags().StringVar(&email, "email", "", "Email")
	createCmd.Flags().StringVar(&gndr, "gender", "", "Género: male|female|other")

	cmd.AddCommand(getCmd, listCmd, createCmd)
	return cmd
}

// seedCommand no habla con el API: abre MongoDB y MySQL con la misma
// config que el server y resiembra los fixtures en ambos.
func seedCommand() *cobra.Command {
	var (
		configPath string
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Borra y resiembra los fixtures en todos los backends configurados",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load(".env")

			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "mercaditoctl"})
			defer func() { _ = logger.Sync() }()

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			dal, err := store.Open(ctx, store.Config{
				MySQL: mysql.Config{
					DSN:             cfg.Storage.MySQL.DSN,
					MaxOpenConns:    cfg.Storage.MySQL.MaxOpenConns,
					MaxIdleConns:    cfg.Storage.MySQL.MaxIdleConns,
					ConnMaxLifetime: cfg.MySQLConnMaxLifetime(),
					ConnMaxIdleTime: cfg.MySQLConnMaxIdleTime(),
				},
				Mongo: mongo.Config{
					URI:            cfg.Storage.Mongo.URI,
					Database:       cfg.Storage.Mongo.Database,
					ConnectTimeout: cfg.MongoConnectTimeout(),
				},
			})
			if err != nil {
				return fmt.Errorf("store: %w", err)
			}
			defer func() { _ = dal.Close() }()

			if err := seed.New(dal).Run(ctx); err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			for _, name := range dal.Backends() {
				b, err := dal.ForBackend(name)
				if err != nil {
					continue
				}
				sellers, _ := b.Sellers().List(ctx)
				categories, _ := b.Categories().List(ctx)
				products, _ := b.Products().List(ctx)
				fmt.Printf("%-8s sellers=%d categories=%d products=%d\n",
					name, len(sellers), len(categories), len(products))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "ruta a config.yaml (fallback: $CONFIG_PATH)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "tiempo máximo para la resiembra completa")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if _, err := os.Stat("configs/config.yaml"); err == nil {
			path = "configs/config.yaml"
		} else {
			return config.FromEnv()
		}
	}
	return config.Load(path)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
