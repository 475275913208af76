package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"chamber_dashboard/internal/models"
	"chamber_dashboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLayoutSQLite_Save_WritesWidthAsText(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewLayoutSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO preferences (key, value, updated_at)")).
		WithArgs(repository.LeftWidthKey, "412.5", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), models.LayoutPreference{LeftWidth: 412.5}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLayoutSQLite_Save_ExecErrorIsPropagated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewLayoutSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO preferences")).
		WithArgs(repository.LeftWidthKey, "400", sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	if err := repo.Save(context.Background(), models.LayoutPreference{LeftWidth: 400}); err == nil {
		t.Fatalf("Save() expected error, got nil")
	}
}

func TestLayoutSQLite_Load(t *testing.T) {
	cases := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantOK  bool
		wantW   float64
		wantErr bool
	}{
		{
			name: "no rows means no preference",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM preferences WHERE key = ?")).
					WithArgs(repository.LeftWidthKey).
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name: "stored text is parsed",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM preferences WHERE key = ?")).
					WithArgs(repository.LeftWidthKey).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("320"))
			},
			wantOK: true,
			wantW:  320,
		},
		{
			name: "garbage text is an error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM preferences WHERE key = ?")).
					WithArgs(repository.LeftWidthKey).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("wide"))
			},
			wantErr: true,
		},
		{
			name: "query error is propagated",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM preferences WHERE key = ?")).
					WithArgs(repository.LeftWidthKey).
					WillReturnError(errors.New("locked"))
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock.New(): %v", err)
			}
			defer func() { _ = db.Close() }()

			tc.setup(mock)
			got, ok, err := repository.NewLayoutSQLite(db).Load(context.Background())
			if (err != nil) != tc.wantErr {
				t.Fatalf("Load() err=%v, wantErr=%v", err, tc.wantErr)
			}
			if ok != tc.wantOK {
				t.Fatalf("Load() ok=%v, want %v", ok, tc.wantOK)
			}
			if got.LeftWidth != tc.wantW {
				t.Fatalf("Load() width=%v, want %v", got.LeftWidth, tc.wantW)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}
