package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"realty-crm-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) CreateProperty(userID uuid.UUID, title, address, status string) (*models.Property, error) {
	if status == "" {
		status = "active"
	}

	var property models.Property
	err := d.db.QueryRow(`
		INSERT INTO properties (id, user_id, title, address, status)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id, user_id, title, address, status, created_at, updated_at
	`, uuid.New(), userID, title, address, status).Scan(
		&property.ID, &property.UserID, &property.Title,
		&property.Address, &property.Status, &property.CreatedAt, &property.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	return &property, nil
}

func (d *DatabaseClient) GetProperty(propertyID, userID uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := d.db.QueryRow(`
		SELECT id, user_id, title, address, status, created_at, updated_at
		FROM properties
		WHERE id = $1 AND user_id = $2
	`, propertyID, userID).Scan(
		&property.ID, &property.UserID, &property.Title,
		&property.Address, &property.Status, &property.CreatedAt, &property.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return &property, nil
}

func (d *DatabaseClient) ListProperties(userID uuid.UUID) ([]models.Property, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, title, address, status, created_at, updated_at
		FROM properties
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var property models.Property
		err := rows.Scan(
			&property.ID, &property.UserID, &property.Title,
			&property.Address, &property.Status, &property.CreatedAt, &property.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, property)
	}

	return properties, nil
}

func (d *DatabaseClient) DeleteProperty(propertyID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM properties
		WHERE id = $1 AND user_id = $2
	`, propertyID, userID)
	return err
}

func (d *DatabaseClient) CreateClient(userID uuid.UUID, fullName, email, phone string) (*models.Client, error) {
	var client models.Client
	err := d.db.QueryRow(`
		INSERT INTO clients (id, user_id, full_name, email, phone)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id, user_id, full_name, email, phone, created_at, updated_at
	`, uuid.New(), userID, fullName, email, phone).Scan(
		&client.ID, &client.UserID, &client.FullName,
		&client.Email, &client.Phone, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &client, nil
}

func (d *DatabaseClient) GetClient(clientID, userID uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := d.db.QueryRow(`
		SELECT id, user_id, full_name, email, phone, created_at, updated_at
		FROM clients
		WHERE id = $1 AND user_id = $2
	`, clientID, userID).Scan(
		&client.ID, &client.UserID, &client.FullName,
		&client.Email, &client.Phone, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &client, nil
}

func (d *DatabaseClient) ListClients(userID uuid.UUID) ([]models.Client, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, full_name, email, phone, created_at, updated_at
		FROM clients
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var client models.Client
		err := rows.Scan(
			&client.ID, &client.UserID, &client.FullName,
			&client.Email, &client.Phone, &client.CreatedAt, &client.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	return clients, nil
}

func (d *DatabaseClient) DeleteClient(clientID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM clients
		WHERE id = $1 AND user_id = $2
	`, clientID, userID)
	return err
}

// CreateMediaAsset inserts a metadata row, assigning display_order as the
// current per-property maximum plus one. The asset's ID, DisplayOrder and
// CreatedAt are filled in from the inserted row.
func (d *DatabaseClient) CreateMediaAsset(asset *models.MediaAsset) error {
	err := d.db.QueryRow(`
		INSERT INTO property_media (id, property_id, file_type, file_url, file_name, caption, display_order, file_size, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6,
			COALESCE((SELECT MAX(display_order) + 1 FROM property_media WHERE property_id = $2), 0),
			$7, $8)
		RETURNING id, display_order, created_at
	`, uuid.New(), asset.PropertyID, asset.FileType, asset.FileURL, asset.FileName,
		asset.Caption, asset.FileSize, asset.UploadedBy,
	).Scan(&asset.ID, &asset.DisplayOrder, &asset.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create media asset: %w", err)
	}

	return nil
}

func (d *DatabaseClient) GetMediaAsset(mediaID uuid.UUID) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	err := d.db.QueryRow(`
		SELECT id, property_id, file_type, file_url, file_name, caption, display_order, file_size, created_at, uploaded_by
		FROM property_media
		WHERE id = $1
	`, mediaID).Scan(
		&asset.ID, &asset.PropertyID, &asset.FileType, &asset.FileURL,
		&asset.FileName, &asset.Caption, &asset.DisplayOrder,
		&asset.FileSize, &asset.CreatedAt, &asset.UploadedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get media asset: %w", err)
	}

	return &asset, nil
}

// ListMediaAssets returns a property's assets in display order, ties broken
// by creation time.
func (d *DatabaseClient) ListMediaAssets(propertyID uuid.UUID) ([]models.MediaAsset, error) {
	rows, err := d.db.Query(`
		SELECT id, property_id, file_type, file_url, file_name, caption, display_order, file_size, created_at, uploaded_by
		FROM property_media
		WHERE property_id = $1
		ORDER BY display_order ASC, created_at ASC
	`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media assets: %w", err)
	}
	defer rows.Close()

	var assets []models.MediaAsset
	for rows.Next() {
		var asset models.MediaAsset
		err := rows.Scan(
			&asset.ID, &asset.PropertyID, &asset.FileType, &asset.FileURL,
			&asset.FileName, &asset.Caption, &asset.DisplayOrder,
			&asset.FileSize, &asset.CreatedAt, &asset.UploadedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media asset: %w", err)
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

func (d *DatabaseClient) UpdateMediaDisplayOrder(mediaID uuid.UUID, displayOrder int) error {
	_, err := d.db.Exec(`
		UPDATE property_media
		SET display_order = $1
		WHERE id = $2
	`, displayOrder, mediaID)
	return err
}

func (d *DatabaseClient) UpdateMediaCaption(mediaID uuid.UUID, caption string) error {
	_, err := d.db.Exec(`
		UPDATE property_media
		SET caption = $1
		WHERE id = $2
	`, caption, mediaID)
	return err
}

// DeletePropertyMedia removes all of a property's metadata rows. Used for
// manual cascade when the property itself is deleted.
func (d *DatabaseClient) DeletePropertyMedia(propertyID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM property_media
		WHERE property_id = $1
	`, propertyID)
	return err
}

func (d *DatabaseClient) DeleteMediaAsset(mediaID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM property_media
		WHERE id = $1
	`, mediaID)
	return err
}

// CreateClientDocument inserts a document row with append-only ordering: the
// new row's display_order is the current count of the client's documents.
func (d *DatabaseClient) CreateClientDocument(doc *models.ClientDocument) error {
	err := d.db.QueryRow(`
		INSERT INTO client_documents (id, client_id, file_name, file_url, file_size, file_type, document_type, description, display_order, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COUNT(*) FROM client_documents WHERE client_id = $2),
			$9)
		RETURNING id, display_order, upload_date
	`, uuid.New(), doc.ClientID, doc.FileName, doc.FileURL, doc.FileSize,
		doc.FileType, doc.DocumentType, doc.Description, doc.UploadedBy,
	).Scan(&doc.ID, &doc.DisplayOrder, &doc.UploadDate)
	if err != nil {
		return fmt.Errorf("failed to create client document: %w", err)
	}

	return nil
}

func (d *DatabaseClient) GetClientDocument(documentID uuid.UUID) (*models.ClientDocument, error) {
	var doc models.ClientDocument
	err := d.db.QueryRow(`
		SELECT id, client_id, file_name, file_url, file_size, file_type, document_type, description, display_order, upload_date, uploaded_by
		FROM client_documents
		WHERE id = $1
	`, documentID).Scan(
		&doc.ID, &doc.ClientID, &doc.FileName, &doc.FileURL, &doc.FileSize,
		&doc.FileType, &doc.DocumentType, &doc.Description, &doc.DisplayOrder,
		&doc.UploadDate, &doc.UploadedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get client document: %w", err)
	}

	return &doc, nil
}

func (d *DatabaseClient) ListClientDocuments(clientID uuid.UUID) ([]models.ClientDocument, error) {
	rows, err := d.db.Query(`
		SELECT id, client_id, file_name, file_url, file_size, file_type, document_type, description, display_order, upload_date, uploaded_by
		FROM client_documents
		WHERE client_id = $1
		ORDER BY display_order ASC, upload_date ASC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client documents: %w", err)
	}
	defer rows.Close()

	var docs []models.ClientDocument
	for rows.Next() {
		var doc models.ClientDocument
		err := rows.Scan(
			&doc.ID, &doc.ClientID, &doc.FileName, &doc.FileURL, &doc.FileSize,
			&doc.FileType, &doc.DocumentType, &doc.Description, &doc.DisplayOrder,
			&doc.UploadDate, &doc.UploadedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client document: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// DeleteClientDocuments removes all of a client's document rows. Used for
// manual cascade when the client itself is deleted.
func (d *DatabaseClient) DeleteClientDocuments(clientID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM client_documents
		WHERE client_id = $1
	`, clientID)
	return err
}

func (d *DatabaseClient) DeleteClientDocument(documentID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM client_documents
		WHERE id = $1
	`, documentID)
	return err
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
