// Package flatten converts the nested JSON records returned by the Alegra
// API into the flat rows stored in the SharePoint lists. Each row type knows
// the internal SharePoint field names of its destination list and can also
// render itself as a spreadsheet row.
package flatten
