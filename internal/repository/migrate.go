package repository

import "database/sql"

// Schemas, one per service database. Each binary ensures only its own
// tables; uniqueness constraints are what surface concurrent duplicates as
// conflicts.

const UsersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

const ProfilesSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL UNIQUE,
	name VARCHAR(255) NOT NULL,
	profile_picture VARCHAR(512) NOT NULL DEFAULT '',
	bio VARCHAR(500) NOT NULL DEFAULT '',
	location VARCHAR(255) NOT NULL DEFAULT '',
	twitter VARCHAR(255) NOT NULL DEFAULT '',
	instagram VARCHAR(255) NOT NULL DEFAULT '',
	facebook VARCHAR(255) NOT NULL DEFAULT '',
	email_notifications BOOLEAN NOT NULL DEFAULT TRUE,
	newsletter BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

const PostsSchema = `
CREATE TABLE IF NOT EXISTS posts (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	content TEXT NOT NULL,
	image_url VARCHAR(512) NOT NULL,
	category VARCHAR(100) NOT NULL,
	location VARCHAR(255) NOT NULL,
	author BIGINT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	INDEX idx_posts_category (category),
	INDEX idx_posts_author (author)
)`

const MediaSchema = `
CREATE TABLE IF NOT EXISTS media (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	filename VARCHAR(255) NOT NULL UNIQUE,
	original_name VARCHAR(255) NOT NULL,
	mime_type VARCHAR(100) NOT NULL,
	size BIGINT NOT NULL,
	url VARCHAR(512) NOT NULL,
	uploaded_by BIGINT NOT NULL,
	is_public BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	INDEX idx_media_uploader (uploaded_by)
)`

// Migrate applies a schema to the database.
func Migrate(db *sql.DB, schema string) error {
	_, err := db.Exec(schema)
	return err
}
