// Package render turns a finished class graph into the website files:
// model.json and model.css describing the article types, one JSON file per
// class, and one HTML page per rendered document.
package render
