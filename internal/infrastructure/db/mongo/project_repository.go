package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/ports"
)

const collectionProjects = "projects"

// ProjectRepository implements ports.ProjectRepository on MongoDB. It holds
// the database rather than a single collection because the cascade delete
// spans projects, tasks, and comments.
type ProjectRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{db: db, col: db.Collection(collectionProjects)}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProjectRepository) FindByCode(ctx context.Context, code string) (*domain.Project, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *ProjectRepository) findOne(ctx context.Context, filter bson.M) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Project
	if err := r.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// DeleteCascade removes the project's tasks' comments, the tasks, and the
// project inside one transaction. Requires a replica set.
func (r *ProjectRepository) DeleteCascade(ctx context.Context, projectID string) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		tasks := r.db.Collection(collectionTasks)
		comments := r.db.Collection(collectionComments)

		cursor, err := tasks.Find(sc, bson.M{"project_id": projectID},
			options.Find().SetProjection(bson.M{"_id": 1}))
		if err != nil {
			return nil, fmt.Errorf("find project tasks: %w", err)
		}
		var docs []struct {
			ID string `bson:"_id"`
		}
		if err := cursor.All(sc, &docs); err != nil {
			return nil, fmt.Errorf("decode task ids: %w", err)
		}
		taskIDs := make([]string, 0, len(docs))
		for _, d := range docs {
			taskIDs = append(taskIDs, d.ID)
		}

		if len(taskIDs) > 0 {
			if _, err := comments.DeleteMany(sc, bson.M{"task_id": bson.M{"$in": taskIDs}}); err != nil {
				return nil, fmt.Errorf("delete comments: %w", err)
			}
			if _, err := tasks.DeleteMany(sc, bson.M{"project_id": projectID}); err != nil {
				return nil, fmt.Errorf("delete tasks: %w", err)
			}
		}

		res, err := r.col.DeleteOne(sc, bson.M{"_id": projectID})
		if err != nil {
			return nil, fmt.Errorf("delete project: %w", err)
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrProjectNotFound
		}
		return nil, nil
	})
	return err
}

func (r *ProjectRepository) List(ctx context.Context, f ports.ProjectFilter) ([]domain.Project, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		or := []bson.M{{"name": re}, {"description": re}}
		if f.SearchCode {
			or = append(or, bson.M{"code": re})
		}
		filter["$or"] = or
	}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.IDs != nil {
		filter["_id"] = bson.M{"$in": f.IDs}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	sortKey := "created_at"
	if f.SortByUpdated {
		sortKey = "updated_at"
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortKey, Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	var projects []domain.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, 0, fmt.Errorf("decode projects: %w", err)
	}
	return projects, total, nil
}

func (r *ProjectRepository) ListByMember(ctx context.Context, userID string) ([]domain.Project, error) {
	return r.findAll(ctx, bson.M{"member_ids": userID})
}

func (r *ProjectRepository) ListByMembers(ctx context.Context, userIDs []string) ([]domain.Project, error) {
	return r.findAll(ctx, bson.M{"member_ids": bson.M{"$in": userIDs}})
}

func (r *ProjectRepository) findAll(ctx context.Context, filter bson.M) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var projects []domain.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}
