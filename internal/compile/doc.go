/*
Package compile turns a project's read records into the cross-referenced
class graph and publishes the rendered website.

A compile run is a fixed sequence of stages:

 1. Loading: the project descriptor, its model file and its documents are read
    through a config.Loader. Each dependency is loaded the same way and
    checked for compatibility: its model must be a subset of the project model
    and its own dependencies must be dependencies of the project.

 2. Registration (phase 1): every article declaration of every source, local
    documents first and then each dependency in declared order, is registered
    in the classes.Store. Classes are created on first sight. Articles of
    dependencies included as Obfuscated get a random key at this point.

 3. Linking and structure (phase 2): only after every source is registered,
    declared links are wired and document overviews are assembled into pages.
    A reference to a class registered by a later source therefore resolves.

 4. Publishing: pages, classes and the model are rendered into a staging
    directory that replaces the website directory only when every file was
    written.

Every failure aborts the run; nothing is published.
*/
package compile
