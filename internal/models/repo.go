package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Validate reports fields by their JSON names so messages match the payload.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

const UnknownLabel = "Unknown"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// ValidationMessage flattens validator errors into one readable line.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "email":
			parts = append(parts, field+" must be a valid email")
		case "uuid":
			parts = append(parts, field+" must be a valid id")
		case "min", "gt":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}

type SupabaseRepo struct {
	supabaseClient *supabase.Client
	logger         *slog.Logger
}

func SupabaseNewRepo(supabaseClient *supabase.Client, logger *slog.Logger) *SupabaseRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
		logger:         logger.With("repo", "supabase"),
	}
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

// classify turns PostgREST error codes into the package sentinels.
func classify(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "23505"):
		return fmt.Errorf("%w: %s", ErrDuplicate, msg)
	case strings.Contains(msg, "22P02"), strings.Contains(msg, "PGRST116"):
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return err
}

func execRows[T any](fb *postgrest.FilterBuilder, what string) ([]T, error) {
	data, _, err := fb.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, classify(err))
	}
	rows := []T{}
	if len(data) == 0 {
		return rows, nil
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", what, err)
	}
	return rows, nil
}

func execFirst[T any](fb *postgrest.FilterBuilder, what string) (*T, error) {
	rows, err := execRows[T](fb, what)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return &rows[0], nil
}

func (su *SupabaseRepo) insertOne(table string, value any) *postgrest.FilterBuilder {
	return su.supabaseClient.From(table).Insert(value, false, "", "representation", "")
}

func (su *SupabaseRepo) updateOne(table, idColumn string, id uuid.UUID, fields map[string]any) *postgrest.FilterBuilder {
	return su.supabaseClient.From(table).
		Update(fields, "representation", "").
		Eq(idColumn, id.String())
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func setIf[T any](fields map[string]any, column string, v *T) {
	if v != nil {
		fields[column] = *v
	}
}

func joinName(first, last string) string {
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		return UnknownLabel
	}
	return name
}

func ascending() *postgrest.OrderOpts {
	return &postgrest.OrderOpts{Ascending: true}
}
