package repository

import (
	"strings"

	"github.com/mastermind-fa/product-inventory-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

var postgresSortColumns = map[models.SortField]string{
	models.SortByName:        "name",
	models.SortByPrice:       "price",
	models.SortByCategory:    "category",
	models.SortByStock:       "stock",
	models.SortByDescription: "description",
	models.SortByCreatedAt:   "created_at",
	models.SortByUpdatedAt:   "updated_at",
}

var mongoSortKeys = map[models.SortField]string{
	models.SortByName:        "name",
	models.SortByPrice:       "price",
	models.SortByCategory:    "category",
	models.SortByStock:       "stock",
	models.SortByDescription: "description",
	models.SortByCreatedAt:   "createdAt",
	models.SortByUpdatedAt:   "updatedAt",
}

// postgresOrderBy renders an ORDER BY clause from the column allowlist.
// Creation order breaks ties so that paging is stable.
func postgresOrderBy(s *models.Sort) string {
	terms := make([]string, 0, 3)
	primary := ""
	if s != nil {
		if col, ok := postgresSortColumns[s.Field]; ok {
			primary = col
			dir := "ASC"
			if s.Descending {
				dir = "DESC"
			}
			terms = append(terms, col+" "+dir)
		}
	}
	if primary != "created_at" {
		terms = append(terms, "created_at ASC")
	}
	terms = append(terms, "id ASC")
	return "ORDER BY " + strings.Join(terms, ", ")
}

// mongoSort returns nil when no known field is requested so the collection's
// natural (insertion) order applies. Ties fall back to createdAt, then _id.
func mongoSort(s *models.Sort) bson.D {
	if s == nil {
		return nil
	}
	key, ok := mongoSortKeys[s.Field]
	if !ok {
		return nil
	}
	dir := 1
	if s.Descending {
		dir = -1
	}
	sortDoc := bson.D{{Key: key, Value: dir}}
	if key != "createdAt" {
		sortDoc = append(sortDoc, bson.E{Key: "createdAt", Value: 1})
	}
	return append(sortDoc, bson.E{Key: "_id", Value: 1})
}
